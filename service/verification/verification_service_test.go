/*
 * @module service/verification/verification_service_test
 * @description API密钥验证服务单元测试
 * @architecture 测试层
 * @documentReference ai_docs/verification_req.md
 */

package verification

import (
	"strings"
	"testing"

	"aigov-service/service/models"
	"aigov-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *VerificationService {
	t.Helper()
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return NewVerificationService(tdb.DB)
}

func TestCreateAndVerifyKey(t *testing.T) {
	svc := newTestService(t)

	record, apiKey, err := svc.CreateKey("dev@example.com", "开发者", "示例公司")
	require.NoError(t, err)

	// 明文密钥为 id.secret 格式，数据库只存哈希
	parts := strings.SplitN(apiKey, ".", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, record.ID, parts[0])
	assert.NotContains(t, record.SecretHash, parts[1])
	assert.True(t, record.IsEnabled)

	result, err := svc.VerifyKey(apiKey)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "dev@example.com", result.Email)
	assert.Equal(t, "开发者", result.Name)
	assert.Equal(t, "示例公司", result.Company)
}

func TestVerifyKey_EmptyKey(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.VerifyKey("")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "未提供API密钥", result.Reason)
}

func TestVerifyKey_MalformedKey(t *testing.T) {
	svc := newTestService(t)

	for _, key := range []string{"short", "nodotnodotnodot", ".onlysecretpart", "onlyidpart."} {
		result, err := svc.VerifyKey(key)
		require.NoError(t, err, "key=%q", key)
		assert.False(t, result.Valid, "key=%q", key)
		assert.Equal(t, "API密钥格式无效", result.Reason, "key=%q", key)
	}
}

func TestVerifyKey_UnknownID(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.VerifyKey("deadbeefdeadbeef.secretsecretsecret")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "API密钥不存在", result.Reason)
}

func TestVerifyKey_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	record, _, err := svc.CreateKey("dev@example.com", "", "")
	require.NoError(t, err)

	// 错误的secret与不存在的密钥返回相同原因，避免泄露密钥是否存在
	result, err := svc.VerifyKey(record.ID + ".wrongsecretwrongsecret")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "API密钥不存在", result.Reason)
}

func TestVerifyKey_DisabledKey(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	svc := NewVerificationService(tdb.DB)

	record, apiKey, err := svc.CreateKey("dev@example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, tdb.DB.Model(&models.APIKey{}).
		Where("id = ?", record.ID).
		Update("is_enabled", false).Error)

	result, err := svc.VerifyKey(apiKey)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "API密钥已禁用", result.Reason)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "abcdefgh...wxyz", MaskKey("abcdefgh0123456789wxyz"))
	assert.Equal(t, "***", MaskKey("shortkey"))
	assert.Equal(t, "***", MaskKey(""))
}
