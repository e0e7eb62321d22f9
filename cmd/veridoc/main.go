// Package main provides the entry point for the VeriDoc CLI.
//
// VeriDoc assigns heuristic authenticity scores to images and documents,
// classifying each as Verified, Suspicious, or AI Generated.
//
// Usage:
//
//	veridoc serve
//	veridoc scan <file>
//	veridoc history
//
// See --help for all available options.
package main

// main is the entry point for VeriDoc.
func main() {
	Execute()
}
