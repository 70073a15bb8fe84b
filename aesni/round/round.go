package round

import (
	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/internal/hw"
	"github.com/TheusHen/aesni/aesni/keysched"
)

// EncryptBlock returns the encryption of b under s.
func EncryptBlock(s *keysched.Schedule, b block.Block) block.Block {
	var out block.Block
	hw.EncryptBlock(s.Slots(), &out, &b)
	return out
}

// DecryptBlock returns the decryption of b under s.
func DecryptBlock(s *keysched.Schedule, b block.Block) block.Block {
	var out block.Block
	hw.DecryptBlock(s.Slots(), &out, &b)
	return out
}

// Encrypt encrypts the 16-byte src into the 16-byte dst. dst and src may alias.
func Encrypt(s *keysched.Schedule, dst, src []byte) error {
	if len(src) != block.Size || len(dst) != block.Size {
		return block.ErrInvalidBlockLength
	}
	hw.EncryptBlock(s.Slots(), (*block.Block)(dst), (*block.Block)(src))
	return nil
}

// Decrypt decrypts the 16-byte src into the 16-byte dst. dst and src may alias.
func Decrypt(s *keysched.Schedule, dst, src []byte) error {
	if len(src) != block.Size || len(dst) != block.Size {
		return block.ErrInvalidBlockLength
	}
	hw.DecryptBlock(s.Slots(), (*block.Block)(dst), (*block.Block)(src))
	return nil
}

// EncryptBlocks encrypts every whole block of src into dst. Both must be the
// same non-zero multiple of 16 bytes long.
func EncryptBlocks(s *keysched.Schedule, dst, src []byte) error {
	if len(src) == 0 || len(src)%block.Size != 0 || len(dst) != len(src) {
		return block.ErrInvalidBlockLength
	}
	xk := s.Slots()
	for i := 0; i < len(src); i += block.Size {
		hw.EncryptBlock(xk, (*block.Block)(dst[i:i+block.Size]), (*block.Block)(src[i:i+block.Size]))
	}
	return nil
}

// DecryptBlocks is the inverse of EncryptBlocks.
func DecryptBlocks(s *keysched.Schedule, dst, src []byte) error {
	if len(src) == 0 || len(src)%block.Size != 0 || len(dst) != len(src) {
		return block.ErrInvalidBlockLength
	}
	xk := s.Slots()
	for i := 0; i < len(src); i += block.Size {
		hw.DecryptBlock(xk, (*block.Block)(dst[i:i+block.Size]), (*block.Block)(src[i:i+block.Size]))
	}
	return nil
}
