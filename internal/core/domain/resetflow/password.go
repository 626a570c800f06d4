package resetflow

const MinPasswordLength = 8

// MeetsPasswordPolicy reports whether p has at least MinPasswordLength
// characters including an uppercase letter, a lowercase letter, a digit and a
// non-alphanumeric symbol.
func MeetsPasswordPolicy(p RawPassword) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	length := 0
	for _, r := range string(p) {
		length++
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return length >= MinPasswordLength && hasUpper && hasLower && hasDigit && hasSymbol
}

// ValidateNewPassword runs the local checks of the reset step in their fixed
// order: presence, policy, confirmation match. It never touches the gateway.
func ValidateNewPassword(password, confirmation RawPassword) error {
	if password == "" || confirmation == "" {
		return ErrPasswordRequired
	}
	if !MeetsPasswordPolicy(password) {
		return ErrPasswordPolicyViolation
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}
