package domain

// CredentialFragments holds the two client-held credential pieces as read
// from the credential store. Either or both may be empty.
type CredentialFragments struct {
	Session string
	Token   string
}

// CredentialStore reads and writes the caller's credential fragments.
// Absence of a fragment is a normal empty result, not an error.
type CredentialStore interface {
	Get() (CredentialFragments, bool)
	Set(fragments CredentialFragments)
	Clear()
}

// UpstreamCredential is the composed credential attached to every privileged
// upstream call. The fields are unexported so a partial credential cannot be
// constructed outside ComposeCredential.
type UpstreamCredential struct {
	session string
	token   string
}

// ComposeCredential builds an UpstreamCredential from the given fragments.
// Both fragments must be non-empty; anything less is ErrMissingCredential.
func ComposeCredential(fragments CredentialFragments) (UpstreamCredential, error) {
	if fragments.Session == "" || fragments.Token == "" {
		return UpstreamCredential{}, ErrMissingCredential
	}
	return UpstreamCredential{session: fragments.Session, token: fragments.Token}, nil
}

// ComposeFrom reads the store and composes a credential in one step.
func ComposeFrom(store CredentialStore) (UpstreamCredential, error) {
	fragments, ok := store.Get()
	if !ok {
		return UpstreamCredential{}, ErrMissingCredential
	}
	return ComposeCredential(fragments)
}

// SessionFragment returns the session half of the credential.
func (c UpstreamCredential) SessionFragment() string { return c.session }

// TokenFragment returns the bearer-token half of the credential.
func (c UpstreamCredential) TokenFragment() string { return c.token }
