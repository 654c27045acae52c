//go:build !cgo
// +build !cgo

package model

import "fmt"

// LoadDB needs the cgo sqlite driver.
func LoadDB(path string) (*Table, error) {
	return nil, fmt.Errorf("LoadDB: %s: this binary was built without cgo, so sqlite models cannot be read", path)
}
