package consts

// Character sets
const (
	Number        = "0123456789"                 // Numbers
	Lowercase     = "abcdefghijklmnopqrstuvwxyz" // Lowercase letters
	Uppercase     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" // Uppercase letters
	NumLower      = Number + Lowercase           // Numbers + Lowercase letters
	NumLowerUpper = Number + Lowercase + Uppercase
)

const (
	// RequestIDAlphabet alphabet of generated request ids
	RequestIDAlphabet = NumLower
	// RequestIDSize length of generated request ids
	RequestIDSize = 16
)
