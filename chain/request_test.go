package chain

import (
	"testing"

	cardanosdk "github.com/echovl/cardano-go"
	"github.com/stretchr/testify/require"
)

func TestCertificateToSDK(t *testing.T) {
	tests := []struct {
		certType CertificateType
		sdkType  cardanosdk.CertificateType
	}{
		{StakeRegistration, cardanosdk.StakeRegistration},
		{StakeDeregistration, cardanosdk.StakeDeregistration},
		{StakeDelegation, cardanosdk.StakeDelegation},
	}
	for _, test := range tests {
		cert := Certificate{Type: test.certType}
		sdkCert, err := cert.toSDK()
		require.NoError(t, err)
		require.Equal(t, test.sdkType, sdkCert.Type)
	}

	_, err := (&Certificate{Type: CertificateType(99)}).toSDK()
	require.ErrorIs(t, err, ErrUnknownCertType)
}
