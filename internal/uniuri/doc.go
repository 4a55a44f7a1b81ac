// Package uniuri generates random strings for session keys.
// The characters are drawn from crypto/rand with rejection sampling, so every
// character of the alphabet is equally likely.
package uniuri
