package db

// nullString maps "" to nil so optional text columns store NULL instead of
// empty strings.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
