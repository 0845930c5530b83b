package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/silicontrust/element-command/pkg/cli"
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/element"
	"github.com/silicontrust/element-command/pkg/protocol"
)

var (
	ErrCommandLineArgs = errors.New("invalid command line arguments")
	ErrUnknownCommand  = errors.New("unrecognized command")

	actionNamesBitMask = map[string]element.ActionFlags{
		"NONE":          0,
		"NOTIFY":        element.ActionNotify,
		"SELF-DESTRUCT": element.ActionSelfDestruct,
	}
)

type Argument struct {
	name string
	help string
}

type Handler func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error

type Command struct {
	help     string
	args     []Argument
	optional []Argument
	handler  Handler
}

// GetActions translates a comma-separated list of action names into the native bitset.
func GetActions(list string) (element.ActionFlags, error) {
	var mask element.ActionFlags
	for _, name := range strings.Split(list, ",") {
		flag, ok := actionNamesBitMask[strings.TrimSpace(strings.ToUpper(name))]
		if !ok {
			return 0, fmt.Errorf("unrecognized action name: %v", name)
		}
		mask |= flag
	}
	return mask, nil
}

func getAxis(name string) (connector.Axis, error) {
	switch strings.ToLower(name) {
	case "x":
		return connector.AxisX, nil
	case "y":
		return connector.AxisY, nil
	case "z":
		return connector.AxisZ, nil
	case "all":
		return connector.AxisAll, nil
	}
	return 0, fmt.Errorf("unrecognized axis name: %v", name)
}

func fileDigest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(data)
	return digest[:], nil
}

func execute(session *element.Session, config *cli.Config, args []string, timeout time.Duration) error {
	if len(args) == 0 {
		return errors.New("missing COMMAND")
	}

	info, ok := commands[args[0]]
	if !ok {
		return ErrUnknownCommand
	}

	var err error
	if len(args)-1 < len(info.args) || len(args)-1 > len(info.args)+len(info.optional) {
		writeErr("Invalid number of command line arguments: %d (%d required, %d optional).", len(args)-1, len(info.args), len(info.optional))
		err = ErrCommandLineArgs
	} else {
		keywords := make(map[string]string)
		for i, argInfo := range info.args {
			keywords[argInfo.name] = args[i+1]
		}
		index := len(info.args) + 1
		for _, argInfo := range info.optional {
			if index >= len(args) {
				break
			}
			keywords[argInfo.name] = args[index]
			index++
		}
		err = info.handler(session, config, keywords, timeout)
	}

	// Print command-specific help
	if errors.Is(err, ErrCommandLineArgs) {
		info.Usage(args[0])
	}
	return err
}

func (c *Command) Usage(name string) {
	fmt.Printf("Usage: %s", name)
	maxLength := 0
	for _, arg := range c.args {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" [")
	}
	for _, arg := range c.optional {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" ]")
	}
	fmt.Printf("\n%s\n", c.help)
	maxLength++
	for _, arg := range c.args {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
	for _, arg := range c.optional {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
}

var commands = map[string]*Command{
	"lock": &Command{
		help: "Lock IN_FILE into OUT_FILE under the configured key class",
		args: []Argument{
			Argument{name: "IN_FILE", help: "file containing the plaintext"},
			Argument{name: "OUT_FILE", help: "destination for the locked object"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			return session.LockFile(args["IN_FILE"], args["OUT_FILE"], config.KeyClass.Class)
		},
	},
	"unlock": &Command{
		help: "Unlock IN_FILE into OUT_FILE under the configured key class",
		args: []Argument{
			Argument{name: "IN_FILE", help: "file containing the locked object"},
			Argument{name: "OUT_FILE", help: "destination for the recovered plaintext"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			err := session.UnlockFile(args["IN_FILE"], args["OUT_FILE"], config.KeyClass.Class)
			if errors.Is(err, protocol.ErrAuthentication) {
				return errors.New("locked object failed authentication (tampered or wrong key class)")
			}
			return err
		},
	},
	"sign": &Command{
		help: "Sign the SHA-256 digest of FILE with the configured slot",
		args: []Argument{
			Argument{name: "FILE", help: "file to digest and sign"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			digest, err := fileDigest(args["FILE"])
			if err != nil {
				return err
			}
			sig, err := session.SignDigest(digest, config.Slot)
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", sig.Bytes)
			return nil
		},
	},
	"verify": &Command{
		help: "Verify HEX_SIGNATURE over the SHA-256 digest of FILE against the configured slot",
		args: []Argument{
			Argument{name: "FILE", help: "signed file"},
			Argument{name: "HEX_SIGNATURE", help: "raw signature in hex, as printed by sign"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			digest, err := fileDigest(args["FILE"])
			if err != nil {
				return err
			}
			sigBytes, err := hex.DecodeString(args["HEX_SIGNATURE"])
			if err != nil {
				return fmt.Errorf("%w: signature is not valid hex", ErrCommandLineArgs)
			}
			sig := protocol.Signature{Bytes: sigBytes, Curve: element.NativeCurve, Encoding: protocol.EncodingRaw}
			result, err := session.VerifyDigest(digest, config.Slot, sig)
			if err != nil {
				return err
			}
			if result == protocol.Verified {
				fmt.Println("verified")
			} else {
				fmt.Println("NOT verified")
			}
			return nil
		},
	},
	"pubkey": &Command{
		help: "Print the configured slot's public key, or save it as PEM_FILE",
		optional: []Argument{
			Argument{name: "PEM_FILE", help: "write a PEM file instead of printing hex"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			if path, ok := args["PEM_FILE"]; ok {
				return session.SavePublicKey(config.Slot, path)
			}
			point, err := session.PublicKey(config.Slot)
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", point)
			return nil
		},
	},
	"pubkey-cache": &Command{
		help: "Store the configured slot's public key in the system keyring",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			return config.CachePublicKey(session)
		},
	},
	"random": &Command{
		help: "Print N random bytes from the element's TRNG, or fill FILE",
		args: []Argument{
			Argument{name: "N", help: "number of bytes"},
		},
		optional: []Argument{
			Argument{name: "FILE", help: "write the bytes to a file instead of printing hex"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			n, err := strconv.Atoi(args["N"])
			if err != nil {
				return fmt.Errorf("%w: N must be an integer", ErrCommandLineArgs)
			}
			if path, ok := args["FILE"]; ok {
				return session.CreateRandomFile(path, n)
			}
			data, err := session.Random(n)
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", data)
			return nil
		},
	},
	"time": &Command{
		help: "Read the element's real-time clock",
		optional: []Argument{
			Argument{name: "PRECISE", help: "pass 'precise' to block until the next second boundary"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			precise := strings.EqualFold(args["PRECISE"], "precise")
			epoch, err := session.GetTime(precise)
			if err != nil {
				return err
			}
			fmt.Printf("%d (%s)\n", epoch, time.Unix(int64(epoch), 0).UTC().Format(time.RFC3339))
			return nil
		},
	},
	"accel": &Command{
		help: "Read the accelerometer's most recent samples",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			x, y, z, err := session.AccelerometerData()
			if err != nil {
				return err
			}
			for _, axis := range []struct {
				name string
				data protocol.AxisData
			}{{"x", x}, {"y", y}, {"z", z}} {
				fmt.Printf("%s: %+.3fg tap=%d\n", axis.name, axis.data.G, axis.data.TapDirection)
			}
			return nil
		},
	},
	"wait-tap": &Command{
		help: "Block until the element detects a tap or the wait timeout elapses",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			tapped, err := session.WaitForTap(timeout)
			if err != nil {
				return err
			}
			if tapped {
				fmt.Println("tap detected")
			} else {
				fmt.Println("timed out")
			}
			return nil
		},
	},
	"wait-perimeter": &Command{
		help: "Block until a perimeter breach notification arrives or the wait timeout elapses",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			breached, err := session.WaitForPerimeterEvent(timeout)
			if err != nil {
				return err
			}
			if breached {
				fmt.Println("perimeter event detected")
			} else {
				fmt.Println("timed out")
			}
			return nil
		},
	},
	"perimeter-info": &Command{
		help: "Print the first-breach timestamp for each perimeter channel",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			timestamps, err := session.PerimeterDetectInfo()
			if err != nil {
				return err
			}
			for channel, ts := range timestamps {
				if ts == 0 {
					fmt.Printf("channel %d: armed\n", channel)
				} else {
					fmt.Printf("channel %d: breached at %s\n", channel, time.Unix(int64(ts), 0).UTC().Format(time.RFC3339))
				}
			}
			return nil
		},
	},
	"perimeter-clear": &Command{
		help: "Clear recorded perimeter events and re-arm all channels",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			return session.ClearPerimeterEvents()
		},
	},
	"perimeter-action": &Command{
		help: "Set the breach ACTIONS for a perimeter CHANNEL",
		args: []Argument{
			Argument{name: "CHANNEL", help: "perimeter channel number"},
			Argument{name: "ACTIONS", help: "comma-separated list of: none, notify, self-destruct"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			channel, err := strconv.Atoi(args["CHANNEL"])
			if err != nil {
				return fmt.Errorf("%w: CHANNEL must be an integer", ErrCommandLineArgs)
			}
			actions, err := GetActions(args["ACTIONS"])
			if err != nil {
				return fmt.Errorf("%w: %s", ErrCommandLineArgs, err)
			}
			if actions&element.ActionSelfDestruct != 0 {
				ok, err := cli.Confirm(fmt.Sprintf(
					"Arming self-destruct on channel %d will permanently destroy key material on breach.", channel))
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("aborted")
				}
			}
			return session.SetPerimeterEventAction(channel, actions)
		},
	},
	"tap-sensitivity": &Command{
		help: "Set tap detection sensitivity for an AXIS",
		args: []Argument{
			Argument{name: "AXIS", help: "one of: x, y, z, all"},
			Argument{name: "PCT", help: "sensitivity percentage, 0 (off) to 100"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			axis, err := getAxis(args["AXIS"])
			if err != nil {
				return fmt.Errorf("%w: %s", ErrCommandLineArgs, err)
			}
			pct, err := strconv.ParseFloat(args["PCT"], 32)
			if err != nil {
				return fmt.Errorf("%w: PCT must be a number", ErrCommandLineArgs)
			}
			return session.SetTapSensitivity(axis, float32(pct))
		},
	},
	"led-on": &Command{
		help: "Turn the element's status LED on",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			return session.LEDOn()
		},
	},
	"led-off": &Command{
		help: "Turn the element's status LED off",
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			return session.LEDOff()
		},
	},
	"led-flash": &Command{
		help: "Flash the element's status LED",
		args: []Argument{
			Argument{name: "ON_MS", help: "on time in milliseconds"},
			Argument{name: "OFF_MS", help: "off time in milliseconds"},
		},
		optional: []Argument{
			Argument{name: "COUNT", help: "number of flashes; 0 or omitted flashes indefinitely"},
		},
		handler: func(session *element.Session, config *cli.Config, args map[string]string, timeout time.Duration) error {
			onMs, err := strconv.ParseUint(args["ON_MS"], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: ON_MS must be an integer", ErrCommandLineArgs)
			}
			offMs, err := strconv.ParseUint(args["OFF_MS"], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: OFF_MS must be an integer", ErrCommandLineArgs)
			}
			var count uint64
			if value, ok := args["COUNT"]; ok {
				count, err = strconv.ParseUint(value, 10, 32)
				if err != nil {
					return fmt.Errorf("%w: COUNT must be an integer", ErrCommandLineArgs)
				}
			}
			return session.LEDFlash(uint32(onMs), uint32(offMs), uint32(count))
		},
	},
}
