// Package configmap serves templates from the data of a Kubernetes
// ConfigMap. The base name of the requested path selects the data key, so
// a loader configured with root "templates/" and suffix ".txt" reads the
// key "welcome.txt" for template "welcome".
package configmap
