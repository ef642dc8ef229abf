package cmdlinegen

import "strings"

// ParamType is the semantic type of one field of a command's result
// structure
type ParamType int

const (
	TypeString ParamType = iota
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeIPAddr
	TypeIPv4
	TypeIPv6
	// TypeChoice is a fixed string field restricted to a set of
	// values, written as `(a,b,c)` in the grammar
	TypeChoice
)

// typeInfo describes how a ParamType is laid out in the generated C
// code
type typeInfo struct {
	// name is what the type is called in dumps and error messages
	name string
	// storage is the C type of the member in the result struct
	storage string
	// token is the C type of the token descriptor
	token string
	// macro is the initializer macro that builds the descriptor
	macro string
	// numTag is the extra argument of TOKEN_NUM_INITIALIZER
	numTag string
}

var typeInfos = map[ParamType]typeInfo{
	TypeString: {"STRING", "cmdline_fixed_string_t", "cmdline_parse_token_string_t", "TOKEN_STRING_INITIALIZER", ""},
	TypeUint8:  {"UINT8", "uint8_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_UINT8"},
	TypeUint16: {"UINT16", "uint16_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_UINT16"},
	TypeUint32: {"UINT32", "uint32_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_UINT32"},
	TypeUint64: {"UINT64", "uint64_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_UINT64"},
	TypeInt8:   {"INT8", "int8_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_INT8"},
	TypeInt16:  {"INT16", "int16_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_INT16"},
	TypeInt32:  {"INT32", "int32_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_INT32"},
	TypeInt64:  {"INT64", "int64_t", "cmdline_parse_token_num_t", "TOKEN_NUM_INITIALIZER", "RTE_INT64"},
	TypeIPAddr: {"IPADDR", "cmdline_ipaddr_t", "cmdline_parse_token_ipaddr_t", "TOKEN_IPADDR_INITIALIZER", ""},
	TypeIPv4:   {"IPV4", "cmdline_ipaddr_t", "cmdline_parse_token_ipaddr_t", "TOKEN_IPV4_INITIALIZER", ""},
	TypeIPv6:   {"IPV6", "cmdline_ipaddr_t", "cmdline_parse_token_ipaddr_t", "TOKEN_IPV6_INITIALIZER", ""},
	TypeChoice: {"CHOICE", "cmdline_fixed_string_t", "cmdline_parse_token_string_t", "TOKEN_STRING_INITIALIZER", ""},
}

// typeTags maps every spelling accepted between `<` and `>` to its
// ParamType.  Choice lists are not here since they're not a fixed
// spelling, see `lookupType`.
var typeTags = map[string]ParamType{
	"STRING":    TypeString,
	"UINT8":     TypeUint8,
	"UINT16":    TypeUint16,
	"UINT32":    TypeUint32,
	"UINT64":    TypeUint64,
	"INT8":      TypeInt8,
	"INT16":     TypeInt16,
	"INT32":     TypeInt32,
	"INT64":     TypeInt64,
	"IP":        TypeIPAddr,
	"IP_ADDR":   TypeIPAddr,
	"IPADDR":    TypeIPAddr,
	"IPV4":      TypeIPv4,
	"IPv4":      TypeIPv4,
	"IPV4_ADDR": TypeIPv4,
	"IPV6":      TypeIPv6,
	"IPv6":      TypeIPv6,
	"IPV6_ADDR": TypeIPv6,
}

func (t ParamType) String() string {
	if info, ok := typeInfos[t]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// IsNumeric is true for the integer types handled by
// TOKEN_NUM_INITIALIZER
func (t ParamType) IsNumeric() bool {
	return typeInfos[t].numTag != ""
}

func (t ParamType) info() typeInfo {
	return typeInfos[t]
}

// lookupType resolves a placeholder tag.  The second return value is
// the list of accepted values when the tag is a choice list, and the
// last one is false when the tag isn't known at all.
func lookupType(tag string) (ParamType, []string, bool) {
	if t, ok := typeTags[tag]; ok {
		return t, nil, true
	}
	if len(tag) >= 2 && strings.HasPrefix(tag, "(") && strings.HasSuffix(tag, ")") {
		return TypeChoice, strings.Split(tag[1:len(tag)-1], ","), true
	}
	return TypeString, nil, false
}
