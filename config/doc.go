// SPDX-License-Identifier: MIT

// Package config loads proteonet settings from layered sources.
//
// Precedence, lowest first:
//
//  1. defaults (Default)
//  2. YAML file (gopkg.in/yaml.v3)
//  3. .env file (github.com/joho/godotenv), read without touching the process environment
//  4. PROTEONET_* environment variables
//
// The merged result is validated with go-playground/validator struct tags.
package config
