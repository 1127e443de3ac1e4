package seeder

import (
	"bufio"
	"fmt"
	"os"
)

const rosterSeparator = "---------------------------------"

// roster is the plaintext credential dump written alongside the database so
// testers can log in as any generated customer. One block per customer, in
// insertion order.
type roster struct {
	f *os.File
	w *bufio.Writer
}

func newRoster(path string) (*roster, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create roster file: %w", err)
	}
	return &roster{f: f, w: bufio.NewWriter(f)}, nil
}

func (r *roster) add(customerID int64, name, email, password, address, phone string) error {
	_, err := fmt.Fprintf(r.w,
		"CustomerID: %d\nName: %s\nE-Mail: %s\nPassword: %s\nAddress: %s\nPhone: %s\n%s\n",
		customerID, name, email, password, address, phone, rosterSeparator)
	return err
}

func (r *roster) Close() error {
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
