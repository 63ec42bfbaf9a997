package planning

import "sort"

// GraphResult 先修图校验结果
type GraphResult struct {
	OK    bool     `json:"ok"`
	Cycle []string `json:"cycle,omitempty"` // 首尾相同的课程 ID 序列
}

// ValidateGraph 检测先修图中的环。
//
// 遍历顺序固定：节点按 ID 升序，每个节点的先修列表按 ID 升序（去重）。
// 返回首个发现的环（不保证最短），形如 [a, b, ..., a]，相邻两项均为输入中的真实边。
// 指向未知课程的边终止于该课程（视为没有更多先修）。
func ValidateGraph(edges []Prerequisite, courseIDs []string) GraphResult {
	adjacency := make(map[string][]string, len(courseIDs))
	for _, id := range courseIDs {
		if _, ok := adjacency[id]; !ok {
			adjacency[id] = nil
		}
	}
	seenEdge := make(map[Prerequisite]bool, len(edges))
	for _, e := range edges {
		if seenEdge[e] {
			continue
		}
		seenEdge[e] = true
		adjacency[e.CourseID] = append(adjacency[e.CourseID], e.PrereqCourseID)
	}

	nodes := make([]string, 0, len(adjacency))
	for id, deps := range adjacency {
		nodes = append(nodes, id)
		sort.Strings(deps)
	}
	sort.Strings(nodes)

	// 显式栈代替递归，避免大课程目录下的栈深问题
	type frame struct {
		node string
		next int
	}

	onPath := make(map[string]int) // node → 在 path 中的下标
	done := make(map[string]bool)
	path := make([]string, 0, 16)

	for _, start := range nodes {
		if done[start] {
			continue
		}

		stack := []frame{{node: start}}
		onPath[start] = 0
		path = append(path[:0], start)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := adjacency[top.node]

			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++

				if idx, ok := onPath[dep]; ok {
					cycle := make([]string, 0, len(path)-idx+1)
					cycle = append(cycle, path[idx:]...)
					cycle = append(cycle, dep)
					return GraphResult{OK: false, Cycle: cycle}
				}
				if done[dep] {
					continue
				}

				onPath[dep] = len(path)
				path = append(path, dep)
				stack = append(stack, frame{node: dep})
				continue
			}

			// 所有先修均已处理完毕：出栈
			delete(onPath, top.node)
			done[top.node] = true
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return GraphResult{OK: true}
}
