// Package rpc defines JSON-RPC 2.0 wire format types for WebSocket communication.
// These types represent the params and result structures for all RPC methods.
package rpc

import (
	"time"

	"github.com/netwatch/server/netmon"
	"github.com/netwatch/server/settings"
)

// Client → Server

type AuthParams struct {
	Token string `json:"token"`
}

type AuthResult struct {
	Version  string `json:"version"`
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
	Backend  string `json:"backend"`
}

// Network namespace

type NetworkSubscribeResult struct {
	ID         string                  `json:"id"`
	Interfaces []netmon.InterfaceState `json:"interfaces"`
}

type NetworkUnsubscribeParams struct {
	ID string `json:"id"`
}

type NetworkSuspendParams struct {
	ID string `json:"id"`
}

type NetworkResumeParams struct {
	ID string `json:"id"`
}

type NetworkInterfacesResult struct {
	Taken      time.Time               `json:"taken"`
	Interfaces []netmon.InterfaceState `json:"interfaces"`
}

type NetworkHistoryParams struct {
	Limit int `json:"limit,omitempty"` // <= 0 means all retained events
}

type NetworkHistoryResult struct {
	Events []netmon.Event `json:"events"`
}

// NetworkChangedParams is sent to subscribers as the network.changed
// notification payload.
type NetworkChangedParams struct {
	ID     string         `json:"id"`
	Events []netmon.Event `json:"events"`
}

// DNS namespace

type DNSSubscribeParams struct {
	Path string `json:"path,omitempty"` // empty = first configured resolver file
}

type DNSSubscribeResult struct {
	ID          string   `json:"id"`
	Path        string   `json:"path"`
	Nameservers []string `json:"nameservers,omitempty"`
}

type DNSUnsubscribeParams struct {
	ID string `json:"id"`
}

// DNSChangedParams is sent to subscribers as the dns.changed
// notification payload.
type DNSChangedParams struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Settings namespace

type SettingsSubscribeResult struct {
	ID       string            `json:"id"`
	Settings settings.Settings `json:"settings"`
}

type SettingsUnsubscribeParams struct {
	ID string `json:"id"`
}

type SettingsUpdateParams struct {
	Settings settings.Settings `json:"settings"`
}

// SettingsChangedParams is sent to subscribers as the settings.changed
// notification payload.
type SettingsChangedParams struct {
	ID       string            `json:"id"`
	Settings settings.Settings `json:"settings"`
}
