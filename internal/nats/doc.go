// Package nats provides NATS messaging between the controller and
// remote command senders (soldergoggles send, scripts, other tools).
//
// # Architecture
//
//   - Server: Embedded NATS server, optional (soldergoggles serve --nats-embedded)
//   - Client: Controller-side client that feeds commands into the dispatcher
//   - CommandPublisher: Sender-side client (soldergoggles send <command>)
//
// # Subject Hierarchy
//
//	soldergoggles.control.command   # Raw command strings (sender → controller)
//	soldergoggles.state.applied     # State after applied commands (controller → subscribers)
//	soldergoggles.state.rejected    # Dropped commands (controller → subscribers)
//
// The package uses fire-and-forget messaging (core NATS, no JetStream).
// The controller gracefully degrades when NATS is unavailable.
//
// # Debugging with nats CLI
//
// Monitor everything the controller publishes:
//
//	nats sub "soldergoggles.state.>"
//
// Send commands manually:
//
//	nats pub "soldergoggles.control.command" "next"
//	nats pub "soldergoggles.control.command" "color:#ff8800"
//	nats pub "soldergoggles.control.command" "leds:ff0000,00ff00,0000ff"
//
// Pretty-print the applied state:
//
//	nats sub "soldergoggles.state.applied" | jq .
//
// # Message Formats
//
// Commands are plain strings, not JSON; whatever arrives on the command
// subject is handed to the dispatcher byte for byte.
//
// AppliedMessage (soldergoggles.state.applied):
//
//	{
//	  "preset_index": 1,
//	  "color": "#ff8800",
//	  "pixels": ["#ff0000", "#00ff00", "#0000ff"],
//	  "brightness": 255,
//	  "interval_ms": 50,
//	  "timestamp": "2024-01-01T12:00:00Z"
//	}
//
// RejectedMessage (soldergoggles.state.rejected):
//
//	{
//	  "command": "set:abc",
//	  "reason": "invalid_format",
//	  "timestamp": "2024-01-01T12:00:00Z"
//	}
package nats
