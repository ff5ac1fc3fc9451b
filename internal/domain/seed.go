package domain

// SeedScamNumbers returns the built-in scam list, in the form it was entered.
func SeedScamNumbers() []string {
	return []string{
		"+62 91112345678",
		"+62 54212345678",
		"+62 65112345678",
		"+62 72112345678",
	}
}
