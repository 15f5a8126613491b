package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// Lighting is the scene lighting fed to the lit shaders each frame. Directions
// point toward the light. A zero FillIntensity disables the fill light.
type Lighting struct {
	Ambient       [3]float32
	KeyDir        [3]float32
	KeyColor      [3]float32
	KeyIntensity  float32
	FillDir       [3]float32
	FillIntensity float32
	SpecularScale float32
	ViewPos       [3]float32
}

// loadLitShader returns the shader used for flat-coloured primitives.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

// LoadLitTexturedShader returns the shader used for loaded models: albedo from
// texture0 (the material's albedo map) times colDiffuse, same lighting as primitives.
func LoadLitTexturedShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litTexturedFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	lighting = `
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 keyDir;
uniform vec3 keyColor;
uniform float keyIntensity;
uniform vec3 fillDir;
uniform float fillIntensity;
uniform float shininess;
uniform float specularScale;
vec3 shade(vec3 albedo) {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 L = normalize(keyDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 color = ambient * albedo + albedo * keyColor * keyIntensity * NdotL;
  if (fillIntensity > 0.0) {
    color += albedo * fillIntensity * max(dot(N, normalize(fillDir)), 0.0);
  }
  if (NdotL > 0.0 && shininess > 0.0) {
    float spec = pow(max(dot(N, normalize(L + V)), 0.0), shininess);
    color += keyColor * spec * specularScale;
  }
  return color;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
out vec4 finalColor;
` + lighting + `
void main() {
  finalColor = vec4(shade(colDiffuse.rgb), colDiffuse.a);
}
`
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
out vec4 finalColor;
` + lighting + `
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  finalColor = vec4(shade(tint.rgb), tint.a);
}
`
)

// SetLighting uploads the lighting uniforms to shader. shininess 0 turns the
// highlight off. Uniform values are copied into local arrays before the cgo call.
func SetLighting(shader rl.Shader, l Lighting, shininess float32) {
	if !rl.IsShaderValid(shader) {
		return
	}
	vec3 := func(name string, v [3]float32) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			vals := []float32{v[0], v[1], v[2]}
			rl.SetShaderValueV(shader, loc, vals, rl.ShaderUniformVec3, 1)
		}
	}
	float := func(name string, v float32) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	vec3("viewPos", l.ViewPos)
	vec3("ambient", l.Ambient)
	vec3("keyDir", l.KeyDir)
	vec3("keyColor", l.KeyColor)
	float("keyIntensity", l.KeyIntensity)
	vec3("fillDir", l.FillDir)
	float("fillIntensity", l.FillIntensity)
	float("shininess", shininess)
	float("specularScale", l.SpecularScale)
}
