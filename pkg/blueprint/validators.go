package blueprint

import "fmt"

// validateRows checks that every one of the rows has exactly width columns.
func validateRows(name string, rows int, cols func(int) int, width int) error {
	for i := 0; i < rows; i++ {
		if c := cols(i); c != width {
			return fmt.Errorf("%s must be (N, %d), row %d has %d columns: %w", name, width, i, c, ErrInputShape)
		}
	}
	return nil
}

// validateVertexID checks 0 <= id < n.
func validateVertexID(id, n int) error {
	if id < 0 || id >= n {
		return fmt.Errorf("vertex id %d not in [0, %d): %w", id, n, ErrIndexRange)
	}
	return nil
}
