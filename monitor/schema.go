package monitor

// ResponseSchema describes the status payload produced for cfg, with each
// check's declared result schema under checks.properties.
func ResponseSchema(cfg *Config) Schema {
	number := Schema{"type": "number"}
	str := Schema{"type": "string"}

	checks := make(Schema, len(cfg.Checks))
	for _, def := range cfg.Checks {
		checks[def.Name] = def.ResultSchema
	}

	return Schema{
		"type": "object",
		"properties": Schema{
			"app":           str,
			"pid":           number,
			"uptimeSeconds": number,
			"memory": Schema{
				"type": "object",
				"properties": Schema{
					"rss":       number,
					"heapTotal": number,
					"heapUsage": number,
					"external":  number,
				},
			},
			"metadata": Schema{
				"type": "object",
				"properties": Schema{
					"revision": str,
					"summary":  str,
				},
			},
			"checks": Schema{
				"type":       "object",
				"properties": checks,
			},
		},
		"required": []string{"pid", "uptimeSeconds", "memory", "metadata", "checks"},
	}
}
