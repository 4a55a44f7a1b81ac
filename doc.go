// Package main provides the entry point of Code Server Panel.
// It runs a fiber web service with a users dashboard backed by gorm,
// a roles screen whose table lives per browser session, and a mock REST API.
package main
