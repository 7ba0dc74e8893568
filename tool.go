package rasdae

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getBool := func(key string) (bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("param %s must be a boolean", key)
		}
		return b, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(f), nil
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	var cfg Config
	var err error
	if cfg.UseMichaelisMentenForAll, err = getBool("mm"); err != nil {
		return fail(err)
	}
	if cfg.EnableFeedback, err = getBool("feedback"); err != nil {
		return fail(err)
	}

	switch req.Tool {
	case "reactions":
		rs := Reactions(cfg)
		return ToolResponse{Result: rs, String: fmt.Sprintf("%d reactions", len(rs))}

	case "pools":
		pools := BuildPools(cfg)
		return ToolResponse{
			Result: map[string]interface{}{
				"pools":        pools,
				"combinations": pools.Combinations(),
				"overlaps":     pools.Overlaps(),
			},
			String: fmt.Sprintf("%d combinations", pools.Combinations()),
		}

	case "ode_system":
		ode := Assemble(cfg)
		return ToolResponse{
			Result: odeToJSON(ode),
			String: fmt.Sprintf("Size of the original ODE system: %d right-side terms.", ode.Size()),
		}

	case "dae_system":
		idx, err := getInt("index")
		if err != nil {
			return fail(err)
		}
		en, err := NewEnumerator(Assemble(cfg), BuildPools(cfg))
		if err != nil {
			return fail(err)
		}
		sys, err := en.At(idx)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: daeToJSON(sys),
			String: fmt.Sprintf("Size of DAE system %d: %d right-side terms.", sys.Index, sys.Size),
		}

	case "dae_systems":
		systems, err := Systems(Assemble(cfg), BuildPools(cfg))
		if err != nil {
			return fail(err)
		}
		out := make([]daeJSON, len(systems))
		for i, sys := range systems {
			out[i] = daeToJSON(sys)
		}
		return ToolResponse{Result: out, String: fmt.Sprintf("%d DAE systems", len(out))}

	case "mcp_spec":
		return ToolResponse{String: MCPToolSpec()}
	}
	return fail(fmt.Errorf("unknown tool: %s", req.Tool))
}

func MCPToolSpec() string {
	flags := map[string]string{"mm": "boolean", "feedback": "boolean"}
	tools := []map[string]interface{}{
		ts("reactions", "List the Ras/MAPK reactions. Optional: mm, feedback", []string{}, flags),
		ts("pools", "Conservation pools Raf0, MEK0, ERK0 and their shared species", []string{}, flags),
		ts("ode_system", "Symbolic ODE system and its right-side term count", []string{}, flags),
		ts("dae_system", "One DAE reduction by 1-based index", []string{"index"}, map[string]string{"mm": "boolean", "feedback": "boolean", "index": "integer"}),
		ts("dae_systems", "Every DAE reduction, Raf0 choice outermost", []string{}, flags),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
