// Package app composes the wallet layer: it turns a config.Config into a
// session store, the session service, the authenticated api client, the DFX
// and LOCK clients and the wallet-signature authenticator.
//
// # Dependency Direction
//
//	cmd/walletctl/
//	      │
//	      ▼
//	internal/app/ (composition)
//	      │
//	      ├──► internal/dfx, internal/lock (endpoint clients)
//	      │           │
//	      │           └──► internal/api (fetch client)
//	      │
//	      ├──► internal/signin ──► internal/wallet
//	      │
//	      └──► internal/auth (sessions)
package app
