package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/silicontrust/element-command/pkg/cli"
	"github.com/silicontrust/element-command/pkg/connector/simulated"
	"github.com/silicontrust/element-command/pkg/element"
	"github.com/silicontrust/element-command/pkg/token"
)

const helpStr = `
usage: element-token [OPTION...] sign AUDIENCE [JSON_FILE]
			Generates a JWS (JSON Web Signature) for JSON_FILE, signed inside the element.
       element-token verify [JWS_FILE]
			Verifies that the signature on JWS_FILE is correct, but does not check that the issuer
			is trusted or that the audience is correct.

Creates or verifies a JWS using standard ES256 signatures produced by the element's signing slot,
so tokens can be checked by any JWT library.

The JSON_FILE may contain standard JWT (JSON Web Token) claims, such as an expiration time.
However, the audience ("aud") and issuer ("iss") will, if present, be overwritten.

This implementation parses the issuer as a base64-encoded public key and uses it to verify the
JWS. The client must verify that the issuer is trusted.`

func readStdinOrFile(filenamePosition int) ([]byte, error) {
	if flag.NArg() <= filenamePosition {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(flag.Arg(filenamePosition))
}

func readClaims(argNumber int) (jwt.MapClaims, error) {
	jsonBytes, err := readStdinOrFile(argNumber)
	if err != nil {
		return nil, err
	}
	var claims jwt.MapClaims
	if err := json.Unmarshal(jsonBytes, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func usage() {
	fmt.Println(helpStr)
	fmt.Println("")
	flag.PrintDefaults()
}

func sign(config *cli.Config) {
	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Missing AUDIENCE string.")
		os.Exit(1)
	}
	audience := flag.Arg(1)
	claims, err := readClaims(2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON: %s\n", err)
		os.Exit(1)
	}

	session, err := element.Open(simulated.New().Connect())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open element: %s\n", err)
		os.Exit(1)
	}
	defer session.Close()

	signed, err := token.Mint(&token.Slot{Session: session, Slot: config.Slot}, audience, claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create JWS: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}

func verify() {
	tokenBytes, err := readStdinOrFile(1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read token: %s\n", err)
		os.Exit(1)
	}
	claims, err := token.Parse(string(tokenBytes))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid JWT: %s\n", err)
		os.Exit(1)
	}
	encoded, err := json.Marshal(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode claims as JSON: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s\n", encoded)
}

func main() {
	flag.Usage = usage

	config, err := cli.NewConfig(cli.FlagSlot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create configuration: %s\n", err)
		os.Exit(1)
	}

	config.RegisterCommandLineFlags()
	flag.Parse()
	config.ReadFromEnvironment()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Missing command (verify/sign)")
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "sign":
		sign(config)
	case "verify":
		verify()
	default:
		fmt.Fprintln(os.Stderr, "Unrecognized command")
		os.Exit(1)
	}
}
