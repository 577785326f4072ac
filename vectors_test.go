package paseto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// Published PASETO test vectors. v2 has no implicit assertion, so the
// "discarded-anyway" assertion of 2-E-7..9 is not passed to v2 calls.

const (
	vectorLocalKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"
	vectorSecret   = "b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a37741eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2"
	vectorSeed     = "b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774"
	vectorPublic   = "1eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

var localVectors = []struct {
	name      string
	version   Version
	nonce     string
	token     string
	payload   string
	footer    string
	assertion string
}{
	{
		name:      "2-E-1",
		version:   Version2,
		nonce:     "000000000000000000000000000000000000000000000000",
		token:     "v2.local.97TTOvgwIxNGvV80XKiGZg_kD3tsXM_-qB4dZGHOeN1cTkgQ4PnW8888l802W8d9AvEGnoNBY3BnqHORy8a5cC8aKpbA0En8XELw2yDk2f1sVODyfnDbi6rEGMY3pSfCbLWMM2oHJxvlEl2XbQ",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "2-E-2",
		version:   Version2,
		nonce:     "000000000000000000000000000000000000000000000000",
		token:     "v2.local.CH50H-HM5tzdK4kOmQ8KbIvrzJfjYUGuu5Vy9ARSFHy9owVDMYg3-8rwtJZQjN9ABHb2njzFkvpr5cOYuRyt7CRXnHt42L5yZ7siD-4l-FoNsC7J2OlvLlIwlG06mzQVunrFNb7Z3_CHM0PK5w",
		payload:   `{"data":"this is a secret message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "2-E-3",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.5K4SCXNhItIhyNuVIZcwrdtaDKiyF81-eWHScuE0idiVqCo72bbjo07W05mqQkhLZdVbxEa5I_u5sgVk1QLkcWEcOSlLHwNpCkvmGGlbCdNExn6Qclw3qTKIIl5-O5xRBN076fSDPo5xUCPpBA",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "2-E-4",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.pvFdDeNtXxknVPsbBCZF6MGedVhPm40SneExdClOxa9HNR8wFv7cu1cB0B4WxDdT6oUc2toyLR6jA6sc-EUM5ll1EkeY47yYk6q8m1RCpqTIzUrIu3B6h232h62DPbIxtjGvNRAwsLK7LcV8oQ",
		payload:   `{"data":"this is a secret message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "2-E-5",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.5K4SCXNhItIhyNuVIZcwrdtaDKiyF81-eWHScuE0idiVqCo72bbjo07W05mqQkhLZdVbxEa5I_u5sgVk1QLkcWEcOSlLHwNpCkvmGGlbCdNExn6Qclw3qTKIIl5-zSLIrxZqOLwcFLYbVK1SrQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "2-E-6",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.pvFdDeNtXxknVPsbBCZF6MGedVhPm40SneExdClOxa9HNR8wFv7cu1cB0B4WxDdT6oUc2toyLR6jA6sc-EUM5ll1EkeY47yYk6q8m1RCpqTIzUrIu3B6h232h62DnMXKdHn_Smp6L_NfaEnZ-A.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a secret message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "2-E-7",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.5K4SCXNhItIhyNuVIZcwrdtaDKiyF81-eWHScuE0idiVqCo72bbjo07W05mqQkhLZdVbxEa5I_u5sgVk1QLkcWEcOSlLHwNpCkvmGGlbCdNExn6Qclw3qTKIIl5-zSLIrxZqOLwcFLYbVK1SrQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "2-E-8",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.pvFdDeNtXxknVPsbBCZF6MGedVhPm40SneExdClOxa9HNR8wFv7cu1cB0B4WxDdT6oUc2toyLR6jA6sc-EUM5ll1EkeY47yYk6q8m1RCpqTIzUrIu3B6h232h62DnMXKdHn_Smp6L_NfaEnZ-A.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a secret message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "2-E-9",
		version:   Version2,
		nonce:     "45742c976d684ff84ebdc0de59809a97cda2f64c84fda19b",
		token:     "v2.local.pvFdDeNtXxknVPsbBCZF6MGedVhPm40SneExdClOxa9HNR8wFv7cu1cB0B4WxDdT6oUc2toyLR6jA6sc-EUM5ll1EkeY47yYk6q8m1RCpqTIzUrIu3B6h232h62DoOJbyKBGPZG50XDZ6mbPtw.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
		payload:   `{"data":"this is a secret message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `arbitrary-string-that-isn't-json`,
		assertion: ``,
	},
	{
		name:      "4-E-1",
		version:   Version4,
		nonce:     "0000000000000000000000000000000000000000000000000000000000000000",
		token:     "v4.local.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQAr68PS4AXe7If_ZgesdkUMvSwscFlAl1pk5HC0e8kApeaqMfGo_7OpBnwJOAbY9V7WU6abu74MmcUE8YWAiaArVI8XJ5hOb_4v9RmDkneN0S92dx0OW4pgy7omxgf3S8c3LlQg",
		payload:   `{"data":"this is a secret message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "4-E-2",
		version:   Version4,
		nonce:     "0000000000000000000000000000000000000000000000000000000000000000",
		token:     "v4.local.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQAr68PS4AXe7If_ZgesdkUMvS2csCgglvpk5HC0e8kApeaqMfGo_7OpBnwJOAbY9V7WU6abu74MmcUE8YWAiaArVI8XIemu9chy3WVKvRBfg6t8wwYHK0ArLxxfZP73W_vfwt5A",
		payload:   `{"data":"this is a hidden message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "4-E-3",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WkwMsYXw6FSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t6-tyebyWG6Ov7kKvBdkrrAJ837lKP3iDag2hzUPHuMKA",
		payload:   `{"data":"this is a secret message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "4-E-4",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WiA8rd3wgFSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t4gt6TiLm55vIH8c_lGxxZpE3AWlH4WTR0v45nsWoU3gQ",
		payload:   `{"data":"this is a hidden message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "4-E-5",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WkwMsYXw6FSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t4x-RMNXtQNbz7FvFZ_G-lFpk5RG3EOrwDL6CgDqcerSQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a secret message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "4-E-6",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WiA8rd3wgFSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t6pWSA5HX2wjb3P-xLQg5K5feUCX4P2fpVK3ZLWFbMSxQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a hidden message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "4-E-7",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WkwMsYXw6FSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t40KCCWLA7GYL9KFHzKlwY9_RnIfRrMQpueydLEAZGGcA.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a secret message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: `{"test-vector":"4-E-7"}`,
	},
	{
		name:      "4-E-8",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WiA8rd3wgFSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t5uvqQbMGlLLNYBc7A6_x7oqnpUK5WLvj24eE4DVPDZjw.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a hidden message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: `{"test-vector":"4-E-8"}`,
	},
	{
		name:      "4-E-9",
		version:   Version4,
		nonce:     "df654812bac492663825520ba2f6e67cf5ca5bdc13d4e7507a98cc4c2fcc3ad8",
		token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WiA8rd3wgFSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t6tybdlmnMwcDMw0YxA_gFSE_IUWl78aMtOepFYSWYfQA.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
		payload:   `{"data":"this is a hidden message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `arbitrary-string-that-isn't-json`,
		assertion: `{"test-vector":"4-E-9"}`,
	},
}

var publicVectors = []struct {
	name      string
	version   Version
	token     string
	payload   string
	footer    string
	assertion string
}{
	{
		name:      "2-S-1",
		version:   Version2,
		token:     "v2.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAxOS0wMS0wMVQwMDowMDowMCswMDowMCJ9HQr8URrGntTu7Dz9J2IF23d1M7-9lH9xiqdGyJNvzp4angPW5Esc7C5huy_M8I8_DjJK2ZXC2SUYuOFM-Q_5Cw",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "2-S-2",
		version:   Version2,
		token:     "v2.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAxOS0wMS0wMVQwMDowMDowMCswMDowMCJ9flsZsx_gYCR0N_Ec2QxJFFpvQAs7h9HtKwbVK2n1MJ3Rz-hwe8KUqjnd8FAnIJZ601tp7lGkguU63oGbomhoBw.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "2-S-3",
		version:   Version2,
		token:     "v2.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAxOS0wMS0wMVQwMDowMDowMCswMDowMCJ9flsZsx_gYCR0N_Ec2QxJFFpvQAs7h9HtKwbVK2n1MJ3Rz-hwe8KUqjnd8FAnIJZ601tp7lGkguU63oGbomhoBw.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2019-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "4-S-1",
		version:   Version4,
		token:     "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9bg_XBBzds8lTZShVlwwKSgeKpLT3yukTw6JUz3W4h_ExsQV-P0V54zemZDcAxFaSeef1QlXEFtkqxT1ciiQEDA",
		payload:   `{"data":"this is a signed message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    ``,
		assertion: ``,
	},
	{
		name:      "4-S-2",
		version:   Version4,
		token:     "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9v3Jt8mx_TdM2ceTGoqwrh4yDFn0XsHvvV_D0DtwQxVrJEBMl0F2caAdgnpKlt4p7xBnx1HcO-SPo8FPp214HDw.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: ``,
	},
	{
		name:      "4-S-3",
		version:   Version4,
		token:     "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9NPWciuD3d0o5eXJXG5pJy-DiVEoyPYWs1YSTwWHNJq6DZD3je5gf-0M4JR9ipdUSJbIovzmBECeaWmaqcaP0DQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
		payload:   `{"data":"this is a signed message","exp":"2022-01-01T00:00:00+00:00"}`,
		footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
		assertion: `{"test-vector":"4-S-3"}`,
	},
}

func vectorOptions(footer, assertion string) []ProvidedOption {
	var opts []ProvidedOption
	if footer != "" {
		opts = append(opts, WithFooter([]byte(footer)))
	}
	if assertion != "" {
		opts = append(opts, WithAssert([]byte(assertion)))
	}
	return opts
}

func TestLocalVectors(t *testing.T) {
	for _, tc := range localVectors {
		t.Run(tc.name, func(t *testing.T) {
			key, err := NewSymmetricKey(mustHex(t, vectorLocalKey), tc.version)
			if err != nil {
				t.Fatalf("NewSymmetricKey failed: %v", err)
			}
			opts := vectorOptions(tc.footer, tc.assertion)
			sealOpts := append([]ProvidedOption{withEntropy(bytes.NewReader(mustHex(t, tc.nonce)))}, opts...)
			got, err := EncryptLocal(tc.version, key, []byte(tc.payload), sealOpts...)
			if err != nil {
				t.Fatalf("EncryptLocal failed: %v", err)
			}
			if got != tc.token {
				t.Fatalf("token mismatch\n got: %s\nwant: %s", got, tc.token)
			}
			msg, err := DecryptLocal(tc.version, tc.token, key, opts...)
			if err != nil {
				t.Fatalf("DecryptLocal failed: %v", err)
			}
			if string(msg.Payload) != tc.payload || string(msg.Footer) != tc.footer {
				t.Fatalf("decrypted %q / %q", msg.Payload, msg.Footer)
			}
		})
	}
}

func TestPublicVectors(t *testing.T) {
	for _, tc := range publicVectors {
		t.Run(tc.name, func(t *testing.T) {
			pk, err := NewAsymmetricPublicKey(mustHex(t, vectorPublic), tc.version)
			if err != nil {
				t.Fatalf("NewAsymmetricPublicKey failed: %v", err)
			}
			opts := vectorOptions(tc.footer, tc.assertion)
			for _, material := range []string{vectorSecret, vectorSeed} {
				sk, err := NewAsymmetricSecretKey(mustHex(t, material), tc.version)
				if err != nil {
					t.Fatalf("NewAsymmetricSecretKey failed: %v", err)
				}
				got, err := SignPublic(tc.version, sk, []byte(tc.payload), opts...)
				if err != nil {
					t.Fatalf("SignPublic failed: %v", err)
				}
				if got != tc.token {
					t.Fatalf("token mismatch (%d-byte key)\n got: %s\nwant: %s", len(material)/2, got, tc.token)
				}
			}
			msg, err := VerifyPublic(tc.version, tc.token, pk, opts...)
			if err != nil {
				t.Fatalf("VerifyPublic failed: %v", err)
			}
			if string(msg.Payload) != tc.payload || string(msg.Footer) != tc.footer {
				t.Fatalf("verified %q / %q", msg.Payload, msg.Footer)
			}
		})
	}
}

func TestFailureVectors(t *testing.T) {
	cases := []struct {
		name      string
		version   Version
		local     bool
		token     string
		footer    string
		assertion string
		want      error
	}{
		{
			name:      "2-F-1",
			version:   Version2,
			local:     false,
			token:     "v2.local.pN9Y9kTFKnCskKr7B13IoceBabSTMS0LkUg3SeAqONg6EJsq9h-CLWdWaA_rMZX4MhGsOQn5I0EsIgYeOA2NPJZU0uulsahH-k871PBq.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
			footer:    `arbitrary-string-that-isn't-json`,
			assertion: ``,
			want:      ErrWrongVersionOrPurpose,
		},
		{
			name:      "2-F-2",
			version:   Version2,
			local:     true,
			token:     "v2.public.eyJpbnZhbGlkIjoidGhpcyBzaG91bGQgbmV2ZXIgZGVjb2RlIn1kgrdAMxcO3wFKXJrLa1cq-DB6V_b25KQ1hV_jpOS-uYBmsg8EMS4j6kl2g83iRsh73knLGr7Ik1AEOvUgyw0P.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
			footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
			assertion: ``,
			want:      ErrWrongVersionOrPurpose,
		},
		{
			name:      "2-F-3",
			version:   Version2,
			local:     true,
			token:     "v1.local.vXWMCh8nxf_RMqrLREJVOWyu01yRzb-miB6mkG1zQ8LS4_W5nQdTOpexZq482ReJ0sv5uFfAWRGpJaONiMqFaAAo-dsbWG2vo63xUmwFGxHNhu9plfFav2SaGDERFGn7IQ20gNQl87eOLaxf2GDsWdfu5hrFaQ.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
			footer:    `arbitrary-string-that-isn't-json`,
			assertion: ``,
			want:      nil,
		},
		{
			name:      "4-F-1",
			version:   Version4,
			local:     false,
			token:     "v4.local.vngXfCISbnKgiP6VWGuOSlYrFYU300fy9ijW33rznDYgxHNPwWluAY2Bgb0z54CUs6aYYkIJ-bOOOmJHPuX_34Agt_IPlNdGDpRdGNnBz2MpWJvB3cttheEc1uyCEYltj7wBQQYX.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
			footer:    `arbitrary-string-that-isn't-json`,
			assertion: `{"test-vector":"4-F-1"}`,
			want:      ErrWrongVersionOrPurpose,
		},
		{
			name:      "4-F-2",
			version:   Version4,
			local:     true,
			token:     "v4.public.eyJpbnZhbGlkIjoidGhpcyBzaG91bGQgbmV2ZXIgZGVjb2RlIn22Sp4gjCaUw0c7EH84ZSm_jN_Qr41MrgLNu5LIBCzUr1pn3Z-Wukg9h3ceplWigpoHaTLcwxj0NsI1vjTh67YB.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
			footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
			assertion: `{"test-vector":"4-F-2"}`,
			want:      ErrWrongVersionOrPurpose,
		},
		{
			name:      "4-F-3",
			version:   Version4,
			local:     true,
			token:     "v3.local.23e_2PiqpQBPvRFKzB0zHhjmxK3sKo2grFZRRLM-U7L0a8uHxuF9RlVz3Ic6WmdUUWTxCaYycwWV1yM8gKbZB2JhygDMKvHQ7eBf8GtF0r3K0Q_gF1PXOxcOgztak1eD1dPe9rLVMSgR0nHJXeIGYVuVrVoLWQ.YXJiaXRyYXJ5LXN0cmluZy10aGF0LWlzbid0LWpzb24",
			footer:    `arbitrary-string-that-isn't-json`,
			assertion: `{"test-vector":"4-F-3"}`,
			want:      nil,
		},
		{
			name:      "4-F-4",
			version:   Version4,
			local:     true,
			token:     "v4.local.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQAr68PS4AXe7If_ZgesdkUMvSwscFlAl1pk5HC0e8kApeaqMfGo_7OpBnwJOAbY9V7WU6abu74MmcUE8YWAiaArVI8XJ5hOb_4v9RmDkneN0S92dx0OW4pgy7omxgf3S8c3LlQh",
			footer:    ``,
			assertion: ``,
			want:      nil,
		},
		{
			name:      "4-F-5",
			version:   Version4,
			local:     true,
			token:     "v4.local.32VIErrEkmY4JVILovbmfPXKW9wT1OdQepjMTC_MOtjA4kiqw7_tcaOM5GNEcnTxl60WkwMsYXw6FSNb_UdJPXjpzm0KW9ojM5f4O2mRvE2IcweP-PRdoHjd5-RHCiExR1IK6t4x-RMNXtQNbz7FvFZ_G-lFpk5RG3EOrwDL6CgDqcerSQ==.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
			footer:    `{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`,
			assertion: ``,
			want:      nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := vectorOptions(tc.footer, tc.assertion)
			var err error
			if tc.local {
				key, kerr := NewSymmetricKey(mustHex(t, vectorLocalKey), tc.version)
				if kerr != nil {
					t.Fatalf("NewSymmetricKey failed: %v", kerr)
				}
				_, err = DecryptLocal(tc.version, tc.token, key, opts...)
			} else {
				pk, kerr := NewAsymmetricPublicKey(mustHex(t, vectorPublic), tc.version)
				if kerr != nil {
					t.Fatalf("NewAsymmetricPublicKey failed: %v", kerr)
				}
				_, err = VerifyPublic(tc.version, tc.token, pk, opts...)
			}
			if err == nil {
				t.Fatal("expected failure")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
