package utils

const (
	NODETOL = 1.e-12
	// Small is the tolerance below which a remaining time interval is
	// treated as exhausted.
	Small = 1.e-15
	// VSmall guards divisions by quantities that may vanish.
	VSmall = 1.e-300
)
