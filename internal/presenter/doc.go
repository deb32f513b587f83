// Package presenter projects the local cache into view models for the quiz
// list and dashboard screens. Presenters read cached rows first, refresh
// them through the reconciliation use cases, then read again, so a screen
// always has something to show even when the network is down.
package presenter
