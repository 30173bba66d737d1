package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FillNewOptionsInteractive prompts the user to confirm or override defaults.
// If stdin is not interactive, it will keep the provided defaults.
func FillNewOptionsInteractive(opts *NewOptions) {
	reader := bufio.NewReader(os.Stdin)

	// Name (directory)
	fmt.Printf("Keyboard name [%s]: ", opts.Name)
	if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
		opts.Name = strings.TrimSpace(s)
	}

	// Display name
	defDisplay := opts.DisplayName
	if defDisplay == "" {
		defDisplay = opts.Name
	}
	fmt.Printf("Display name [%s]: ", defDisplay)
	if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
		opts.DisplayName = strings.TrimSpace(s)
	} else if opts.DisplayName == "" {
		opts.DisplayName = defDisplay
	}

	// Manufacturer
	fmt.Printf("Manufacturer [%s]: ", opts.Manufacturer)
	if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
		opts.Manufacturer = strings.TrimSpace(s)
	}

	// USB vendor ID
	fmt.Printf("USB vendor ID [%s]: ", opts.VendorID)
	if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
		opts.VendorID = strings.TrimSpace(s)
	}

	// USB product ID
	fmt.Printf("USB product ID [%s]: ", opts.ProductID)
	if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
		opts.ProductID = strings.TrimSpace(s)
	}
}
