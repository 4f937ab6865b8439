package effect

// Guard owns a lifetime token and releases it at most once.
type Guard struct {
	token    Token
	released bool
}

// NewGuard wraps token. A nil token yields a guard with nothing to release.
func NewGuard(token Token) *Guard {
	return &Guard{token: token, released: token == nil}
}

// Release releases the token. It reports whether this call did the release.
func (g *Guard) Release() bool {
	if g == nil || g.released {
		return false
	}
	g.released = true
	g.token.Release()
	return true
}

// Released reports whether the token has been released.
func (g *Guard) Released() bool {
	return g == nil || g.released
}
