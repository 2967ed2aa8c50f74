// Package validation provides Laravel-style rule validation of flat string
// maps. The framework uses it to validate configuration loaded from the
// environment and inspector query strings.
//
//	v := validation.Make(map[string]string{
//	    "log.level": cfg.Log.Level,
//	    "app.port":  cfg.App.Port,
//	}, validation.Rules{
//	    "log.level": "required|in:trace,debug,info,warn,error",
//	    "app.port":  "required|integer",
//	})
//
//	if v.Fails() {
//	    return v.Errors().Err()
//	}
//
// # Available Rules
//
//   - required      present and non-blank
//   - nullable      stops processing an empty value
//   - integer, boolean
//   - in:a,b,c
//   - regex:pattern
//
// Processing of a field stops at its first failing rule.
package validation
