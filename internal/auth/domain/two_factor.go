package domain

// TwoFactorState follows disabled -> pending-setup -> enabled -> disabled.
// Secret holds the sealed TOTP seed; RecoveryCodeHashes are SHA-256 hex of the uppercase codes.
type TwoFactorState struct {
	Enabled            bool
	Secret             string
	RecoveryCodeHashes []string
}

func (s TwoFactorState) Pending() bool {
	return !s.Enabled && s.Secret != ""
}

func (s TwoFactorState) RemainingRecoveryCodes() int {
	return len(s.RecoveryCodeHashes)
}
