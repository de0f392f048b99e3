package services

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

// Signature actions bound into signed messages. Binding the action prevents
// a signature captured for one operation from authorizing another.
const (
	ActionProjectUpdate    = "project.update"
	ActionProjectDelete    = "project.delete"
	ActionSubmissionDelete = "submission.delete"
	ActionApprove          = "submission.approve"
)

// SignatureVerifier checks that a mutating call carries a valid wallet
// signature over the operation it performs. Authorization is binary: there
// is no unsigned fallback.
type SignatureVerifier interface {
	Verify(action, resourceID, wallet, nonce, signature string) error
}

// WalletVerifier verifies compact secp256k1 signatures over the keccak-256
// digest of the canonical message, recovering the signing address and
// comparing it to the requester's wallet.
type WalletVerifier struct{}

func NewWalletVerifier() WalletVerifier {
	return WalletVerifier{}
}

// SignableMessage is the canonical byte string a wallet signs to authorize
// one operation on one resource. The nonce is caller-supplied and bound into
// the message.
func SignableMessage(action, resourceID, wallet, nonce string) string {
	return fmt.Sprintf("learnledger:%s:%s:%s:%s", action, resourceID, models.NormalizeWallet(wallet), nonce)
}

// MessageDigest returns the keccak-256 digest of the canonical message.
func MessageDigest(action, resourceID, wallet, nonce string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(SignableMessage(action, resourceID, wallet, nonce)))
	return h.Sum(nil)
}

func (WalletVerifier) Verify(action, resourceID, wallet, nonce, signature string) error {
	if !models.IsValidWallet(wallet) {
		return errs.NewInvalidWalletError(wallet)
	}
	if strings.TrimSpace(nonce) == "" {
		return errs.NewMissingRequiredFieldError("nonce")
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "0x"))
	if err != nil || len(raw) != 65 {
		return errs.NewUnauthorizedError("malformed signature")
	}

	pub, _, err := ecdsa.RecoverCompact(raw, MessageDigest(action, resourceID, wallet, nonce))
	if err != nil {
		return errs.NewUnauthorizedError("signature recovery failed")
	}

	if !strings.EqualFold(AddressFromPubKey(pub), models.NormalizeWallet(wallet)) {
		return errs.NewUnauthorizedError("signature does not match wallet")
	}
	return nil
}

// AddressFromPubKey derives the 0x-prefixed address from a public key: the
// last 20 bytes of the keccak-256 of the uncompressed key without its prefix
// byte.
func AddressFromPubKey(pub *secp256k1.PublicKey) string {
	raw := pub.SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(raw[1:])
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[len(sum)-20:])
}
