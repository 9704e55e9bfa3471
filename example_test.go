package ckv_test

import (
	"fmt"

	ckv "github.com/d1ced/kvparser_ckv"
)

func ExampleDecodeMap() {
	data := []byte(`"player"
{
	"name"	"arthur"
	"mass"	-31.2
}`)
	doc, err := ckv.DecodeMap(data, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	player, _ := doc.Get("player")
	name, _ := player.Get("name")
	v, _ := name.Value()
	fmt.Println(v)
	// Output:
	// arthur
}

func ExampleEncodeBrace() {
	doc := ckv.ObjectNode(
		ckv.Member{Key: "name", Node: ckv.StringNode("arthur")},
	)
	out, err := ckv.EncodeBrace(&doc, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	// Output:
	// name="arthur"
}

func ExampleDecodeTyped() {
	data := []byte(`"pos" "int" [
"4",
"7"
]`)
	doc, err := ckv.DecodeTyped(data, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	pos, _ := doc.Get("pos")
	typeName, _ := pos.Index(0)
	payload, _ := pos.Index(1)
	tv, _ := typeName.Value()
	fmt.Println(tv, payload.Len())
	// Output:
	// int 2
}

func ExampleValid() {
	fmt.Println(ckv.Valid(ckv.Brace, []byte(`path=usr\local`+"\n")))
	fmt.Println(ckv.Valid(ckv.Brace, []byte(`path=`)))
	// Output:
	// true
	// false
}
