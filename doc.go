// Package captable is the backend for Ishu, a cap table service. It bundles
// the domain model (companies, securities, security transactions, and
// shareholders) with the authentication primitives the HTTP layer depends on.
//
// Authentication:
//   - Passwords are hashed with PBKDF2 through HashPassword and verified with
//     ComparePasswordAndHash. The hashing secret comes from configuration, so
//     digests are not portable across deployments.
//   - TokenService issues and validates HS256 JWTs. Authenticator wires it to
//     an IdentityProvider; UserProvider is the Bun-backed provider that also
//     tracks failed login attempts and enforces a cooldown window.
//
// Persistence:
//   - RepositoryManager exposes one go-repository-bun repository per model and
//     a RunInTx helper so multi-record operations (captable initialization,
//     invite acceptance) commit atomically.
//
// Invites:
//   - Shareholders can be invited by email. NewInviteToken derives a
//     deterministic token from the address and issue time; ConsumeInviteTx
//     links the accepting user to the shareholder inside the signup
//     transaction.
package captable
