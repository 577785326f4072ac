// Package commands defines the paseto CLI.
//
// Commands
//
//   - generate   Issue a claim token (iat, nbf and exp filled in)
//   - validate   Open a claim token and check expected claim values
//   - encrypt    Seal a raw payload as a local token
//   - decrypt    Open a local token and print its payload
//   - sign       Sign a raw payload as a public token
//   - verify     Verify a public token and print its payload
//   - keygen     Create a symmetric key or an Ed25519 key pair
//   - key split  Split a key into Shamir shares
//   - key combine Rebuild a key from shares
//
// Keys are read from --key-file or, failing that, from stdin. They may be
// given as base64, hex or the raw characters of a 32-byte key.
//
// # Configuration
//
// Settings come from defaults, the YAML file named by --config (or the user
// config dir), PASETO_* environment variables and finally the global flags.
// Errors are printed in the selected output format and exit with status 1.
package commands
