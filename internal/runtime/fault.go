package runtime

import "fmt"

// WenyanFault is a user- or runtime-raised structured exception (spec §3
// "WenyanFault{name,msg}"), caught by 姑妄行此/豈…之禍歟/不知何禍歟 and
// otherwise propagated to the top level as the program's failure.
type WenyanFault struct {
	Name string
	Msg  string
}

func (f *WenyanFault) Error() string {
	if f.Msg == "" {
		return f.Name
	}
	return fmt.Sprintf("%s: %s", f.Name, f.Msg)
}

// Value renders the fault as the dict-like binding a Try handler's
// `名之曰` variable receives (spec §8 scenario 6: `夫「禍」之「「名」」`
// reads the fault's name through ordinary indexing), so catching code sees
// an ordinary object rather than a distinct host type.
func (f *WenyanFault) Value() Value {
	d := NewDict()
	d.Set("名", Str(f.Name))
	d.Set("訊", Str(f.Msg))
	return DictVal(d)
}

// emptyStackFault is raised when Take (pending-take 取) runs against an
// empty __stack (spec §4.6 "Errors from runtime": "name=虛指 for empty-stack
// take").
func emptyStackFault() *WenyanFault { return &WenyanFault{Name: "虛指", Msg: "棧空而取"} }

// unboundNameFault is raised on an unknown-name lookup (spec §4.6 "the spec
// requires at least... unknown-name lookup... to fail with a structured
// fault").
func unboundNameFault(name string) *WenyanFault { return &WenyanFault{Name: "不識之名", Msg: name} }
