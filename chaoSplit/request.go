package chaoSplit

import (
	"fmt"

	"github.com/bzsome/ChaoGoSplit/utils"
)

// ResourceDescriptor 探测得到的文件信息, 每次Run都会重新探测
type ResourceDescriptor struct {
	URL            string
	SupportsRanges bool  //是否支持分段下载
	TotalBytes     int64 //文件大小, HasSize为false时无意义
	HasSize        bool
}

// Candidate 是否可以参与分段实验
func (rd ResourceDescriptor) Candidate() bool {
	return rd.SupportsRanges && rd.HasSize
}

// ByteRange 半开区间 [Start, End)
// OpenEnd 为true时请求一直读到文件末尾, End只用于统计
type ByteRange struct {
	Start   int64
	End     int64
	OpenEnd bool
}

// Header 返回Range请求头的值
func (r ByteRange) Header() string {
	if r.OpenEnd {
		return utils.RangeHeader(r.Start, -1)
	}
	return utils.RangeHeader(r.Start, r.End)
}

func (r ByteRange) Span() [2]int64 {
	return [2]int64{r.Start, r.End}
}

func (r ByteRange) Len() int64 {
	return r.End - r.Start
}

func (r ByteRange) String() string {
	if r.OpenEnd {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// FetchOutcome 一个分段请求的结果, 数据本身不保留
type FetchOutcome struct {
	Range     ByteRange
	ByteCount int64
	Success   bool
	Err       error
}
