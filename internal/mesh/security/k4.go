package security

import (
	"crypto/aes"
	"errors"
	"fmt"

	"github.com/aead/cmac"
)

// KeySize AppKey/NetKey 固定长度（128bit）
const KeySize = 16

// AIDMask k4 输出取低6位
const AIDMask = 0x3F

var ErrInvalidKey = errors.New("security: key must be 16 bytes")

var (
	zeroKey = make([]byte, KeySize)
	k4Salt  = mustS1("smk4")
	k4P     = []byte{'i', 'd', '6', 0x01}
)

// AESCMAC 计算 AES-CMAC(key, m)，返回16字节 MAC
func AESCMAC(key, m []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	mac, err := cmac.Sum(m, block, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("aes-cmac: %w", err)
	}
	return mac, nil
}

// S1 盐值生成函数 s1(M) = AES-CMAC(ZERO, M)（Mesh Profile 3.8.2.4）
func S1(m []byte) ([]byte, error) {
	return AESCMAC(zeroKey, m)
}

func mustS1(s string) []byte {
	salt, err := S1([]byte(s))
	if err != nil {
		panic(err)
	}
	return salt
}

// K4 由 AppKey 派生 AID（Mesh Profile 3.8.2.8）
//
//	T  = AES-CMAC(s1("smk4"), N)
//	k4 = AES-CMAC(T, "id6" || 0x01) mod 2^6
func K4(n []byte) (byte, error) {
	if len(n) != KeySize {
		return 0, ErrInvalidKey
	}
	t, err := AESCMAC(k4Salt, n)
	if err != nil {
		return 0, err
	}
	out, err := AESCMAC(t, k4P)
	if err != nil {
		return 0, err
	}
	return out[len(out)-1] & AIDMask, nil
}
