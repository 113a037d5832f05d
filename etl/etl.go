// Package etl loads a CSV export into a relational table: extract the file, normalize
// column names and blank missing values, then append the rows.
package etl

import (
	"context"
	"fmt"
	"log"
)

// Run transforms the frame in place and hands it to the loader.
// It returns the number of rows written.
func Run(ctx context.Context, frame *Frame, loader Loader) (int64, error) {
	Transform(frame)
	log.Printf("🔧 Transformed %d rows, columns: %v", frame.Len(), frame.Columns)

	n, err := loader.Load(ctx, frame)
	if err != nil {
		return 0, fmt.Errorf("load failed: %w", err)
	}
	return n, nil
}
