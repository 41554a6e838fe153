package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateInvoiceCode 生成发票编号
// 格式:INV + 时间戳(秒) + 6位随机数
// 示例:INV1699248000123456
func GenerateInvoiceCode() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("INV%d%06d", timestamp, random)
}
