package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName   = "com.silicontrust.element"
	keyringPubKeyService = "elementPublicKey"
	keyringDirectory     = "~/.element_keys"
)

type backendType struct {
	config *Config
}

func (b backendType) String() string {
	if b.config == nil || len(b.config.Backend.AllowedBackends) == 0 {
		return string(keyring.InvalidBackend)
	}
	return string(b.config.Backend.AllowedBackends[0])
}

func (b backendType) Set(v string) error {
	value := keyring.BackendType(v)
	if b.config == nil {
		return fmt.Errorf("invalid backendType")
	}
	if v == "" {
		return nil
	}
	for _, name := range keyring.AvailableBackends() {
		if name == value {
			b.config.Backend.AllowedBackends = []keyring.BackendType{name}
			return nil
		}
	}
	return fmt.Errorf("unsupported credential storage")
}

func (c *Config) getPassword(prompt string) (string, error) {
	if c.password != nil && *c.password != "" {
		return *c.password, nil
	}

	var w io.Writer
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fd = int(os.Stderr.Fd())
		if !term.IsTerminal(fd) {
			return "", fmt.Errorf("no terminal output available for password prompt")
		}
		w = os.Stderr
	} else {
		w = os.Stdout
	}

	fmt.Fprintf(w, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	password := string(b)
	c.password = &password
	return password, nil
}

func (c *Config) openKeyring() (keyring.Keyring, error) {
	return keyring.Open(c.Backend)
}

func (c *Config) fullPubKeyName() string {
	return keyringPubKeyService + "." + c.PubKeyName
}

// SavePublicKeyToKeyring stores an exported element public key in the system keyring under
// c.PubKeyName.
func (c *Config) SavePublicKeyToKeyring(point []byte) error {
	if c.PubKeyName == "" {
		return ErrNoPubKeyName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	if err := kr.Set(keyring.Item{
		Key:  c.fullPubKeyName(),
		Data: point,
	}); err != nil {
		return fmt.Errorf("failed to enroll public key in keyring: %s", err)
	}
	return nil
}

// LoadPublicKeyFromKeyring reads a previously cached element public key from the system keyring.
//
// The configured name must match the value provided when the key was saved.
func (c *Config) LoadPublicKeyFromKeyring() ([]byte, error) {
	if c.PubKeyName == "" {
		return nil, ErrNoPubKeyName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return nil, err
	}
	item, err := kr.Get(c.fullPubKeyName())
	if err != nil {
		return nil, fmt.Errorf("could not load public key: %s", err)
	}
	return item.Data, nil
}

// DeletePublicKey removes the cached element public key from the system keyring.
func (c *Config) DeletePublicKey() error {
	if c.PubKeyName == "" {
		return ErrNoPubKeyName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	return kr.Remove(c.fullPubKeyName())
}

// Confirm prompts the user before an irreversible action and returns true only for an explicit
// "yes" answer.
func Confirm(prompt string) (bool, error) {
	fmt.Printf("%s Type 'yes' to continue: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}
