package service

// QRCodeService defines the interface for QR code generation services.
type QRCodeService interface {
	// GenerateDownloadQR generates a QR code image (PNG) encoding the public
	// view URL for a freshly minted download token, so a buyer can open the
	// purchase on another device within the token's validity window.
	GenerateDownloadQR(token string) ([]byte, error)
}
