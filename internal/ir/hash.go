package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed hashes. The version suffix allows
// the hashing scheme to change without colliding with older hashes.
const (
	DomainTopology = "ctrlgraph/topology/v1"
	DomainNodeDump = "ctrlgraph/node-dump/v1"
)

// hashWithDomain computes SHA-256 with domain separation: SHA256(domain +
// 0x00 + data). The null byte prevents ambiguity at the domain/data boundary.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TopologyHash computes a stable content hash for a decoded topology
// descriptor, used to detect whether a running engine's DAG shape still
// matches the descriptor it was built from.
func TopologyHash(topology any) (string, error) {
	canonical, err := MarshalCanonical(topology)
	if err != nil {
		return "", fmt.Errorf("ir: hash topology: %w", err)
	}
	return hashWithDomain(DomainTopology, canonical), nil
}

// NodeDumpHash computes a content hash for a node's debug dump payload, so
// repeated compute-failure dumps for identical state can be deduplicated by
// callers that log them.
func NodeDumpHash(dump any) (string, error) {
	canonical, err := MarshalCanonical(dump)
	if err != nil {
		return "", fmt.Errorf("ir: hash node dump: %w", err)
	}
	return hashWithDomain(DomainNodeDump, canonical), nil
}
