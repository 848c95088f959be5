package utils

// MaskWallet masks a wallet address for logging (show first 4 and last 4
// characters). Full addresses only ever appear in reports, not log lines.
func MaskWallet(wallet string) string {
	if len(wallet) > 8 {
		return wallet[:4] + "..." + wallet[len(wallet)-4:]
	}
	return "****"
}
