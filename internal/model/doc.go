// Package model contains the interfaces shared by several packages
// of the bridge, with the objective of separating unrelated pieces
// of code and making unit testing easier.
//
// This package should not contain logic, unless this logic is strictly
// related to the interfaces and we cannot implement it elsewhere.
//
// - logger.go: generic definition of an apex/log compatible logger.
package model
