// Package discordhook sends messages to Discord channels through the Discord
// bot-messaging REST API.
//
// Unlike gateway-based integrations, this package keeps no persistent
// connection. Each send resolves a bot token and a target endpoint from a
// named connection record, serializes the message as a JSON payload, and
// issues a single authenticated HTTP POST. Connection records are supplied by
// a ConnectionStore implementation; the envstore, yamlstore, and sqlstore
// subpackages cover the common backends.
//
// The package also provides an outbound-only sarah.Adapter so that go-sarah
// bots can announce to Discord over REST without opening a gateway session.
//
// See https://github.com/oklahomer/go-discord-hook for full documentation
// and examples.
package discordhook
