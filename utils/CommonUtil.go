package utils

import (
	"sort"
)

//根据下标删除
func DeleteSliceIndex(list [][2]int64, index int) [][2]int64 {
	return append(list[:index], list[index+1:]...)
}

//合并连续的号段, 返回新的切片, 不修改入参
func MergeSub(subs [][2]int64) [][2]int64 {
	merged := make([][2]int64, len(subs))
	copy(merged, subs)
	//首先排序
	SortSub(merged)
	//如果结束大于等于 后面 的开始，则合并
	for i := 0; i < len(merged)-1; i++ {
		if merged[i][1] >= merged[i+1][0] {
			if merged[i+1][1] > merged[i][1] {
				merged[i][1] = merged[i+1][1]
			}
			merged = DeleteSliceIndex(merged, i+1)
			i = i - 1
		}
	}
	return merged
}

//判断是否是子集
func HasSubset(one [2]int64, subs [][2]int64) bool {
	//必须完全包含此段
	for _, sed := range subs {
		if sed[0] <= one[0] && sed[1] >= one[1] {
			return true
		}
	}
	return false
}

//对号段排序
func SortSub(subs [][2]int64) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i][0] < subs[j][0]
	})
}

//获得号段的总长度
func GetDownTotal(subs [][2]int64) int64 {
	var total = int64(0)
	for _, one := range subs {
		size := one[1] - one[0]
		total = total + size
	}
	return total
}
