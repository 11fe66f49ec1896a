// Package storage retrieves content that oracle results point at from
// decentralized storage (IPFS and Lighthouse/Filecoin).
//
// Some models do not return their output inline. Stable Diffusion, for
// example, stores the generated image on IPFS and the oracle keeps only the
// CID. This package turns such a reference back into bytes.
//
// # Supported Backends
//
// IPFS:
//   - Access via the Kubo HTTP API (`ipfs cat`)
//   - References: bare CIDs or ipfs://<cid>
//   - CIDs are validated locally before the node is contacted
//
// Lighthouse (Filecoin gateway):
//   - Access via a plain HTTP gateway
//   - References: filecoin://<cid> or lighthouse://<cid>
//   - Default: https://gateway.lighthouse.storage/ipfs/
//
// # Usage
//
//	client := storage.NewStorage(
//		"http://localhost:5001",
//		"https://gateway.lighthouse.storage/ipfs/",
//		30*time.Second,
//	)
//
//	image, err := client.ReadFile(ctx, cid)
//
// The sdk package creates a Client from Config.IpfsURL and
// Config.LighthouseURL and hands it to the oracle plugin, which exposes it
// through FetchAIResultContent.
//
// # CID Formats
//
// CIDv0 starts with "Qm" and is 46 characters long, for example
// QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG. CIDv1 usually starts with
// "bafy", for example
// bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi.
package storage
