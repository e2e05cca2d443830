package edit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/truss/pkg/truss"
)

// numberList renders 1-based numbers as "3", "3 and 5" or "1, 2, 5 and 7".
func numberList(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// membersPhrase renders "<verb> member 3." or "<verb> members 3 and 5."
func membersPhrase(verb string, members []*truss.Member) string {
	nums := make([]int, len(members))
	for i, m := range members {
		nums[i] = m.Number()
	}
	noun := "member"
	if len(members) != 1 {
		noun = "members"
	}
	return fmt.Sprintf("%s %s %s.", verb, noun, numberList(nums))
}
