/*
Package ports defines the driven ports (interfaces) used by the typeguard adapters.

# Key Interfaces

  - SchemaStore: persists named contracts so they can be referenced by name
    from the HTTP API, the MCP server and the CLI.

Implementations live in pkg/adapters (memory, file, redis) and are verified
with RunSchemaStoreContract.
*/
package ports
