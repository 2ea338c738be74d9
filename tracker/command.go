package tracker

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownCommand is returned when an envelope carries a command id or
// type name this client does not recognize.
var ErrUnknownCommand = errors.New("tracker: unknown command")

// CommandID is the stable discriminant of a command envelope.
type CommandID int

const (
	CommandConnection CommandID = 0
	CommandXRMode     CommandID = 1
	CommandPenShake   CommandID = 2
)

// Command is one of ConnectionCommand, XRModeCommand or PenShakeCommand.
type Command interface {
	ID() CommandID
	// TypeName is the type tag carried in the envelope.
	TypeName() string
	command()
}

// TriState is a setting that may be left unchanged.
type TriState int

const (
	TriUnset TriState = -1
	TriOff   TriState = 0
	TriOn    TriState = 1
)

// DisplayMode selects mono or stereo output.
type DisplayMode int

const (
	DisplayUnset  DisplayMode = -1
	DisplayMono   DisplayMode = 0
	DisplayStereo DisplayMode = 1
)

// ConnectionCommand is the handshake sent when a duplex transport opens.
type ConnectionCommand struct {
	SDKMajor int    `json:"sdkMajor"`
	SDKMinor int    `json:"sdkMinor"`
	Platform int    `json:"platform"`
	AppID    int    `json:"appId"`
	AppName  string `json:"appName"`
}

// XRModeCommand switches tracking and the display mode.
type XRModeCommand struct {
	Tracking    TriState    `json:"tracking"`
	DisplayMode DisplayMode `json:"displayMode"`
}

// PenShakeCommand drives the pen's vibration motor. Time is in milliseconds
// (negative runs until stopped) and Strength is 0-100, 0 stops.
type PenShakeCommand struct {
	Time     int `json:"time"`
	Strength int `json:"strength"`
}

func (ConnectionCommand) ID() CommandID    { return CommandConnection }
func (ConnectionCommand) TypeName() string { return "ConnectionCommand" }
func (ConnectionCommand) command()         {}

func (XRModeCommand) ID() CommandID    { return CommandXRMode }
func (XRModeCommand) TypeName() string { return "XRModeCommand" }
func (XRModeCommand) command()         {}

func (PenShakeCommand) ID() CommandID    { return CommandPenShake }
func (PenShakeCommand) TypeName() string { return "PenShakeCommand" }
func (PenShakeCommand) command()         {}

type envelope struct {
	CID  CommandID           `json:"cid"`
	Type string              `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

// EncodeCommand encodes cmd as a {cid, type, data} JSON envelope.
func EncodeCommand(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnknownCommand)
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("tracker: encode %s: %w", cmd.TypeName(), err)
	}
	return json.Marshal(envelope{CID: cmd.ID(), Type: cmd.TypeName(), Data: data})
}

// DecodeCommand decodes a JSON envelope. The type tag must match the id.
func DecodeCommand(b []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("tracker: decode envelope: %w", err)
	}
	var cmd Command
	switch env.CID {
	case CommandConnection:
		var c ConnectionCommand
		if err := unmarshalData(env.Data, &c); err != nil {
			return nil, err
		}
		cmd = c
	case CommandXRMode:
		var c XRModeCommand
		if err := unmarshalData(env.Data, &c); err != nil {
			return nil, err
		}
		cmd = c
	case CommandPenShake:
		var c PenShakeCommand
		if err := unmarshalData(env.Data, &c); err != nil {
			return nil, err
		}
		cmd = c
	default:
		return nil, fmt.Errorf("%w: cid %d", ErrUnknownCommand, env.CID)
	}
	if env.Type != cmd.TypeName() {
		return nil, fmt.Errorf("%w: cid %d with type %q", ErrUnknownCommand, env.CID, env.Type)
	}
	return cmd, nil
}

func unmarshalData(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("tracker: decode data: %w", err)
	}
	return nil
}
