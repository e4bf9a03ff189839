package domain

// Zero overwrites b with zeros. Used on derived keys once a call is done with them.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
