package planning

import (
	"reflect"
	"testing"
)

// assertValidCycle 检查环首尾相同且相邻两项都是输入中的边
func assertValidCycle(t *testing.T, cycle []string, edges []Prerequisite) {
	t.Helper()
	if len(cycle) < 2 {
		t.Fatalf("环长度至少为 2，实际: %v", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Fatalf("环首尾应相同，实际: %v", cycle)
	}
	edgeSet := make(map[Prerequisite]bool, len(edges))
	for _, e := range edges {
		edgeSet[e] = true
	}
	for i := 0; i+1 < len(cycle); i++ {
		e := Prerequisite{CourseID: cycle[i], PrereqCourseID: cycle[i+1]}
		if !edgeSet[e] {
			t.Errorf("环中 %s → %s 不是输入中的边", cycle[i], cycle[i+1])
		}
	}
}

func TestValidateGraph_Empty(t *testing.T) {
	result := ValidateGraph(nil, nil)
	if !result.OK {
		t.Errorf("空图应无环，实际: %v", result.Cycle)
	}
}

func TestValidateGraph_Acyclic(t *testing.T) {
	edges := []Prerequisite{
		{CourseID: "c3", PrereqCourseID: "c2"},
		{CourseID: "c2", PrereqCourseID: "c1"},
		{CourseID: "c3", PrereqCourseID: "c1"},
		// 独立分量
		{CourseID: "c5", PrereqCourseID: "c4"},
	}
	result := ValidateGraph(edges, []string{"c1", "c2", "c3", "c4", "c5", "c6"})
	if !result.OK {
		t.Errorf("DAG 不应报告环，实际: %v", result.Cycle)
	}
}

func TestValidateGraph_DiamondIsNotCycle(t *testing.T) {
	edges := []Prerequisite{
		{CourseID: "d", PrereqCourseID: "b"},
		{CourseID: "d", PrereqCourseID: "c"},
		{CourseID: "b", PrereqCourseID: "a"},
		{CourseID: "c", PrereqCourseID: "a"},
	}
	result := ValidateGraph(edges, []string{"a", "b", "c", "d"})
	if !result.OK {
		t.Errorf("菱形依赖不是环，实际: %v", result.Cycle)
	}
}

func TestValidateGraph_SimpleCycle(t *testing.T) {
	edges := []Prerequisite{
		{CourseID: "a", PrereqCourseID: "b"},
		{CourseID: "b", PrereqCourseID: "c"},
		{CourseID: "c", PrereqCourseID: "a"},
	}
	result := ValidateGraph(edges, []string{"a", "b", "c"})
	if result.OK {
		t.Fatal("应检测到环")
	}
	assertValidCycle(t, result.Cycle, edges)

	// 节点按 ID 升序遍历，从 a 出发
	want := []string{"a", "b", "c", "a"}
	if !reflect.DeepEqual(result.Cycle, want) {
		t.Errorf("期望 %v，实际 %v", want, result.Cycle)
	}
}

func TestValidateGraph_CycleNotAtRoot(t *testing.T) {
	// a → b → c → d → b：环不包含起点
	edges := []Prerequisite{
		{CourseID: "a", PrereqCourseID: "b"},
		{CourseID: "b", PrereqCourseID: "c"},
		{CourseID: "c", PrereqCourseID: "d"},
		{CourseID: "d", PrereqCourseID: "b"},
	}
	result := ValidateGraph(edges, []string{"a", "b", "c", "d"})
	if result.OK {
		t.Fatal("应检测到环")
	}
	assertValidCycle(t, result.Cycle, edges)
	want := []string{"b", "c", "d", "b"}
	if !reflect.DeepEqual(result.Cycle, want) {
		t.Errorf("期望 %v，实际 %v", want, result.Cycle)
	}
}

func TestValidateGraph_SelfLoop(t *testing.T) {
	edges := []Prerequisite{{CourseID: "x", PrereqCourseID: "x"}}
	result := ValidateGraph(edges, []string{"x"})
	if result.OK {
		t.Fatal("自环应被检测")
	}
	want := []string{"x", "x"}
	if !reflect.DeepEqual(result.Cycle, want) {
		t.Errorf("期望 %v，实际 %v", want, result.Cycle)
	}
}

func TestValidateGraph_UnknownNodes(t *testing.T) {
	// 边引用不在课程列表中的课程，不应 panic
	edges := []Prerequisite{
		{CourseID: "a", PrereqCourseID: "ghost"},
		{CourseID: "orphan", PrereqCourseID: "a"},
	}
	result := ValidateGraph(edges, []string{"a"})
	if !result.OK {
		t.Errorf("不应报告环，实际: %v", result.Cycle)
	}
}

func TestValidateGraph_DeterministicAcrossInputOrder(t *testing.T) {
	edges := []Prerequisite{
		{CourseID: "m", PrereqCourseID: "n"},
		{CourseID: "n", PrereqCourseID: "m"},
		{CourseID: "p", PrereqCourseID: "q"},
		{CourseID: "q", PrereqCourseID: "p"},
	}
	reversed := []Prerequisite{edges[3], edges[2], edges[1], edges[0]}

	r1 := ValidateGraph(edges, []string{"m", "n", "p", "q"})
	r2 := ValidateGraph(reversed, []string{"q", "p", "n", "m"})
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("相同图不同输入顺序结果应一致: %v vs %v", r1, r2)
	}
	assertValidCycle(t, r1.Cycle, edges)
}

func TestValidateGraph_LongChain(t *testing.T) {
	// 长链不应因递归过深失败
	const n = 20000
	ids := make([]string, n)
	edges := make([]Prerequisite, 0, n)
	for i := 0; i < n; i++ {
		ids[i] = "c" + itoa(i)
		if i > 0 {
			edges = append(edges, Prerequisite{CourseID: ids[i], PrereqCourseID: ids[i-1]})
		}
	}
	if result := ValidateGraph(edges, ids); !result.OK {
		t.Fatal("长链不应有环")
	}

	edges = append(edges, Prerequisite{CourseID: ids[0], PrereqCourseID: ids[n-1]})
	result := ValidateGraph(edges, ids)
	if result.OK {
		t.Fatal("首尾相连后应有环")
	}
	assertValidCycle(t, result.Cycle, edges)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
