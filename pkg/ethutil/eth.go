package ethutil

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ZeroAddress is the canonical hex form of the null address, used as the
// "none" sentinel throughout the ledger.
var ZeroAddress = common.Address{}.Hex()

// Normalize turns any accepted hex form of an address into its canonical
// checksummed form.
func Normalize(addr string) string {
	return common.HexToAddress(addr).Hex()
}

func IsZero(addr string) bool {
	return common.HexToAddress(addr) == common.Address{}
}

// ContractAddress derives a deterministic ledger account address for a drop
// from its snowflake id.
func ContractAddress(dropID int64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(dropID))
	hash := ethcrypto.Keccak256(append([]byte("drop"), buf[:]...))
	return common.BytesToAddress(hash[12:]).Hex()
}

// SignPersonal signs the message with the personal-message envelope, the
// same scheme browser wallets use.
func SignPersonal(privateKey *ecdsa.PrivateKey, msg []byte) (string, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(msg), privateKey)
	if err != nil {
		return "", err
	}

	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// RecoverPersonal returns the address that produced a personal-message
// signature over msg.
func RecoverPersonal(msg []byte, sigHex string) (string, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return "", err
	}

	if len(sig) != ethcrypto.SignatureLength {
		return "", errors.New("invalid signature length")
	}

	if sig[64] >= 27 {
		sig = append([]byte{}, sig...)
		sig[64] -= 27
	}

	pub, err := ethcrypto.SigToPub(accounts.TextHash(msg), sig)
	if err != nil {
		return "", err
	}

	return ethcrypto.PubkeyToAddress(*pub).Hex(), nil
}

func GeneratePrivateKey(secret, nonce []byte) (*ecdsa.PrivateKey, error) {
	seed := sha256.Sum256(append(secret, nonce...))
	randomSeed := bytes.Repeat(seed[:], 2)
	reader := bytes.NewReader(randomSeed)
	return ecdsa.GenerateKey(ethcrypto.S256(), reader)
}

func GeneratePublicKey(secret, nonce []byte) (common.Address, error) {
	walletPrivateKey, err := GeneratePrivateKey(secret, nonce)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(walletPrivateKey.PublicKey), nil
}
