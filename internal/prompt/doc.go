// Package prompt asks the operator to confirm proposed 1:1 bookings.
//
// On a terminal the choice is a promptui selection. Otherwise, and in tests,
// a y/n/q answer is read line by line.
package prompt
