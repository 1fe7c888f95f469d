// Package config loads named client profiles from YAML files and turns
// them into client options.
//
// A profile file looks like:
//
//	defaultProfile: staging
//	profiles:
//	  staging:
//	    baseUrl: https://staging.example.com
//	    timeout: 10s
//	    maxRedirects: 5
//	    raiseHttpErrors: true
//	    headers:
//	      Authorization: Bearer token
//
// Load it and build a client:
//
//	cfg, err := config.Load("hopper.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	profile, err := cfg.Profile("staging")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := profile.Options()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := http.New(opts...)
package config
