// Package ui contains the Approver implementations used to confirm
// sanitizing a folder that lies outside the user partition.
package ui
