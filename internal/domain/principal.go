package domain

// Principal captures normalized caller identity resolved from the
// bearer token, plus the internal user record it maps to.
type Principal struct {
	ID       string
	UserID   uint
	Subject  string
	Issuer   string
	Username string
	Email    string
	Name     string
	Scopes   []string
}

// HasScope checks if the principal possesses a scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
