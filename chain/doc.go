// Package chain builds ordered, duplicate-free track sequences by repeatedly
// stepping from the current track to the best ranked unvisited candidate.
package chain
