/*
Package cli facilitates building command-line applications that talk to a secure element. It
defines a [Config] type that registers common command-line flags (using the Golang flag package)
and environment variable equivalents.

The package uses [keyring]'s platform-agnostic interface to store element public keys in an
OS-dependent credential store, so that other tools on the host can verify element signatures
without re-reading the device.

# Examples

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags()
	flag.Parse()
	config.ReadFromEnvironment()
*/
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/99designs/keyring"

	"github.com/silicontrust/element-command/internal/log"
	"github.com/silicontrust/element-command/pkg/element"
)

var keyClassesByName = map[string]element.KeyClass{
	"one-way": element.KeyClassOneWay,
	"shared":  element.KeyClassShared,
}

// KeyClassValue translates key class names provided at the command line into native
// element.KeyClass values.
type KeyClassValue struct {
	Class element.KeyClass
	set   bool
}

// Set updates a KeyClassValue from a command-line argument.
func (k *KeyClassValue) Set(value string) error {
	class, ok := keyClassesByName[strings.ToLower(value)]
	if !ok {
		return fmt.Errorf("unknown key class '%s'", value)
	}
	k.Class = class
	k.set = true
	return nil
}

func (k *KeyClassValue) String() string {
	for name, class := range keyClassesByName {
		if k.set && class == k.Class {
			return name
		}
	}
	return ""
}

// Environment variable names used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvElementSlot         = "ELEMENT_SLOT"
	EnvElementKeyClass     = "ELEMENT_KEY_CLASS"
	EnvElementPubKeyName   = "ELEMENT_PUBKEY_NAME"
	EnvElementKeyringType  = "ELEMENT_KEYRING_TYPE"
	EnvElementKeyringPass  = "ELEMENT_KEYRING_PASSWORD"
	EnvElementKeyringPath  = "ELEMENT_KEYRING_PATH"
	EnvElementKeyringDebug = "ELEMENT_KEYRING_DEBUG"
)

// Flag controls what options should be scanned from the command line and/or environment
// variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagSlot     Flag = 1 // Enable signing slot option.
	FlagKeyClass Flag = 2 // Enable lock/unlock key class option.
	FlagKeyring  Flag = 4 // Enable credential store options for cached public keys.
	FlagAll      Flag = FlagSlot | FlagKeyClass | FlagKeyring
)

var (
	ErrNoPubKeyName = errors.New("public key name not provided")
	ErrKeyNotFound  = keyring.ErrKeyNotFound
)

// Config fields determine which element key material command-line tools operate on and where
// exported public keys are cached.
type Config struct {
	Flags       Flag          // Controls which set of environment variables/CLI flags to use.
	Slot        int           // Signing key slot.
	KeyClass    KeyClassValue // Key class for lock and unlock commands.
	PubKeyName  string        // Name for the element public key in the system keyring.
	Backend     keyring.Config
	BackendType backendType
	Debug       bool // Enable keyring debug messages

	password *string
}

func NewConfig(flags Flag) (*Config, error) {
	c := Config{
		Flags: flags,
		KeyClass: KeyClassValue{
			Class: element.KeyClassOneWay,
			set:   true,
		},
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getPassword
	c.Backend.FilePasswordFunc = c.getPassword

	return &c, nil
}

func (c *Config) RegisterCommandLineFlags() {
	if c.Flags.isSet(FlagSlot) {
		flag.IntVar(&c.Slot, "slot", 0, "Signing key `slot`. Defaults to $ELEMENT_SLOT.")
	}
	if c.Flags.isSet(FlagKeyClass) {
		flag.Var(&c.KeyClass, "key-class", "Key class for lock/unlock (one-way|shared). Defaults to $ELEMENT_KEY_CLASS.")
	}
	if c.Flags.isSet(FlagKeyring) {
		flag.StringVar(&c.PubKeyName, "pubkey-name", "", "System keyring `name` for the element public key. Defaults to $ELEMENT_PUBKEY_NAME.")
		var names []string
		for _, name := range keyring.AvailableBackends() {
			names = append(names, string(name))
		}
		sort.Strings(names)
		flag.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+strings.Join(names, "|")+"). Defaults to $ELEMENT_KEYRING_TYPE.")
		flag.StringVar(&c.Backend.FileDir, "keyring-file-dir", keyringDirectory, "keyring `directory` for file-backed keyring types")
		flag.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
	}
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() will prevent the environment from overriding
// explicit command-line parameters.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagSlot) && c.Slot == 0 {
		if value := os.Getenv(EnvElementSlot); value != "" {
			if slot, err := strconv.Atoi(value); err == nil {
				c.Slot = slot
				log.Debug("Set slot to %d", c.Slot)
			} else {
				log.Warning("Ignoring malformed $%s: %s", EnvElementSlot, value)
			}
		}
	}
	if c.Flags.isSet(FlagKeyClass) {
		if value := os.Getenv(EnvElementKeyClass); value != "" {
			if err := c.KeyClass.Set(value); err == nil {
				log.Debug("Set key class to '%s'", c.KeyClass.String())
			} else {
				log.Warning("Ignoring malformed $%s: %s", EnvElementKeyClass, value)
			}
		}
	}
	if c.Flags.isSet(FlagKeyring) {
		if c.PubKeyName == "" {
			c.PubKeyName = os.Getenv(EnvElementPubKeyName)
			log.Debug("Set public key name to '%s'", c.PubKeyName)
		}
		if c.BackendType.String() == string(keyring.InvalidBackend) {
			if err := c.BackendType.Set(os.Getenv(EnvElementKeyringType)); err == nil {
				log.Debug("Set keyring type to '%s'", c.BackendType.String())
			}
		}
		if c.password == nil {
			password := os.Getenv(EnvElementKeyringPass)
			c.password = &password
		}
		if c.Backend.FileDir == "" {
			c.Backend.FileDir = os.Getenv(EnvElementKeyringPath)
			log.Debug("Set keyring file path to '%s'", c.Backend.FileDir)
		}
		if !c.Debug {
			_, c.Debug = os.LookupEnv(EnvElementKeyringDebug)
		}
	}
}

// CachePublicKey exports the public key for the configured slot from the session and stores it in
// the system keyring under c.PubKeyName.
func (c *Config) CachePublicKey(session *element.Session) error {
	if c.PubKeyName == "" {
		return ErrNoPubKeyName
	}
	point, err := session.PublicKey(c.Slot)
	if err != nil {
		return err
	}
	return c.SavePublicKeyToKeyring(point)
}
